// cmd/genhash/main.go — imprime o hash bcrypt de uma senha.
// Uso: go run cmd/genhash/main.go <senha>
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	senha := "restopos2026"
	if len(os.Args) > 1 {
		senha = os.Args[1]
	}
	h, err := bcrypt.GenerateFromPassword([]byte(senha), 12)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(h))
}
