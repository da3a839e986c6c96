package service

import (
	"context"
	"fmt"
	"time"

	"restopos/internal/apierror"
	"restopos/internal/config"
	"restopos/internal/dto"
	"restopos/internal/model"
	"restopos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthService handles credential checks, token issuance and user management.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error)
	AtualizarUsuario(ctx context.Context, id uint, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesativarUsuario(ctx context.Context, id uint) error
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		// same message for unknown user and bad password
		return nil, apierror.Validationf("credenciais inválidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("username", req.Username).Msg("tentativa de login com senha incorreta")
		return nil, apierror.Validationf("credenciais inválidas")
	}
	return s.issueTokens(u)
}

// Refresh validates a refresh token and issues a fresh pair. The user is
// re-read so a deactivated account cannot keep refreshing.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return nil, apierror.Validationf("refresh token inválido")
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		return nil, apierror.Validationf("refresh token inválido")
	}
	username, _ := claims["username"].(string)
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apierror.Validationf("refresh token inválido")
	}
	return s.issueTokens(u)
}

func (s *authService) CriarUsuario(ctx context.Context, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("gerar hash de senha: %w", err)
	}
	u := &model.Usuario{
		Username:     req.Username,
		Nome:         req.Nome,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Ativo:        true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	log.Info().Str("username", u.Username).Str("rol", u.Rol).Msg("usuário criado")
	return usuarioToResponse(u), nil
}

func (s *authService) ListarUsuarios(ctx context.Context) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("listar usuários: store indisponível, retornando vazio")
		return []dto.UsuarioResponse{}, nil
	}
	resp := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		resp = append(resp, *usuarioToResponse(&usuarios[i]))
	}
	return resp, nil
}

func (s *authService) AtualizarUsuario(ctx context.Context, id uint, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nome != "" {
		u.Nome = req.Nome
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Rol != "" {
		u.Rol = req.Rol
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("gerar hash de senha: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return usuarioToResponse(u), nil
}

func (s *authService) DesativarUsuario(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) issueTokens(u *model.Usuario) (*dto.LoginResponse, error) {
	expiresIn := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	access, err := s.signToken(u, "access", expiresIn)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(u, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(expiresIn.Seconds()),
		User:         *usuarioToResponse(u),
	}, nil
}

func (s *authService) signToken(u *model.Usuario, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"rol":      u.Rol,
		"type":     typ,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("claims inválidas")
	}
	return claims, nil
}

func usuarioToResponse(u *model.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:       u.ID,
		Username: u.Username,
		Nome:     u.Nome,
		Email:    u.Email,
		Rol:      u.Rol,
		Ativo:    u.Ativo,
	}
}
