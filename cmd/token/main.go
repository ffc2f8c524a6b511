// Comando token: emite un JWT de desarrollo firmado con JWT_SECRET.
//
//	go run ./cmd/token -role inventory_manager -name "Ana Pérez" -employee E-042
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

func main() {
	role := flag.String("role", entity.RoleAdmin, "admin | inventory_manager | auditor | viewer")
	name := flag.String("name", "Desarrollo", "nombre del usuario")
	employee := flag.String("employee", "E-000", "identificador de empleado")
	userID := flag.String("user", "", "id del usuario (default: uuid nuevo)")
	flag.Parse()

	if !entity.IsValidRole(*role) {
		fmt.Fprintf(os.Stderr, "rol inválido %q\n", *role)
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(2)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET es obligatorio")
		os.Exit(2)
	}
	if *userID == "" {
		*userID = uuid.NewString()
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
		UserID:     *userID,
		EmployeeID: *employee,
		Name:       *name,
		Role:       *role,
	}, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(2)
	}
	fmt.Println(tok)
}
