package service

import (
	"context"
	"testing"

	"restopos/internal/apierror"
	"restopos/internal/config"
	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.Username == u.Username {
			return apierror.Constraint("username já cadastrado")
		}
	}
	r.nextID++
	u.ID = r.nextID
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, apierror.NotFound("usuário")
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Ativo {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, apierror.NotFound("usuário")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Ativo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uint) error {
	if u, ok := r.usuarios[id]; ok {
		u.Ativo = false
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── helpers ──────────────────────────────────────────────────────────────────

func newAuthFixture(t *testing.T) (AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    2,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUsuario(t *testing.T, svc AuthService, username, password, rol string) *dto.UsuarioResponse {
	t.Helper()
	u, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Username: username,
		Nome:     "Usuário Teste",
		Password: password,
		Rol:      rol,
	})
	require.NoError(t, err)
	return u
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestLoginComCredenciaisValidas(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUsuario(t, svc, "maria", "senha-forte", "operador")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "senha-forte",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "maria", resp.User.Username)
	assert.Equal(t, "operador", resp.User.Rol)
}

func TestLoginComSenhaIncorreta(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUsuario(t, svc, "maria", "senha-forte", "operador")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "maria",
		Password: "senha-errada",
	})
	assert.Error(t, err)
}

func TestLoginUsuarioDesativado(t *testing.T) {
	svc, _ := newAuthFixture(t)
	u := seedUsuario(t, svc, "carlos", "senha-forte", "admin")

	require.NoError(t, svc.DesativarUsuario(context.Background(), u.ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "carlos",
		Password: "senha-forte",
	})
	assert.Error(t, err)
}

func TestRefreshEmiteNovoPar(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUsuario(t, svc, "ana", "senha-forte", "admin")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ana",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "ana", renovado.User.Username)
}

func TestRefreshRejeitaAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUsuario(t, svc, "ana", "senha-forte", "admin")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ana",
		Password: "senha-forte",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.AccessToken)
	assert.Error(t, err)
}

func TestCriarUsuarioDuplicado(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUsuario(t, svc, "maria", "senha-forte", "operador")

	_, err := svc.CriarUsuario(context.Background(), dto.CriarUsuarioRequest{
		Username: "maria",
		Nome:     "Outra Maria",
		Password: "outra-senha",
		Rol:      "operador",
	})
	assert.True(t, apierror.IsConstraint(err))
}
