// Command makeadmin promotes a user to the ADMIN role and lists accounts.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"storefront/m/domain"
	"storefront/m/internal/config"
	"storefront/m/internal/database"
	"storefront/m/internal/migrations"
)

func main() {
	email := flag.String("email", "", "email of the user to promote to ADMIN")
	list := flag.Bool("list", false, "list all users and their roles")
	flag.Parse()

	if *email == "" && !*list {
		log.Fatal("usage: makeadmin -email user@example.com | makeadmin -list")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if *email != "" {
		res, err := db.Exec(`UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
			domain.RoleAdmin, strings.ToLower(strings.TrimSpace(*email)))
		if err != nil {
			log.Fatalf("failed to update role: %v", err)
		}
		affected, _ := res.RowsAffected()
		if affected == 0 {
			log.Fatalf("user with email %s not found", *email)
		}
		fmt.Printf("User %s has been updated to %s role\n", *email, domain.RoleAdmin)
	}

	if *list || *email != "" {
		var users []domain.User
		if err := db.Select(&users, `SELECT id, name, email, password, role, profile_pic, created_at, updated_at FROM users ORDER BY id`); err != nil {
			log.Fatalf("failed to list users: %v", err)
		}
		fmt.Println("All users:")
		for _, u := range users {
			fmt.Printf("ID: %d, Email: %s, Name: %s, Role: %s\n", u.ID, u.Email, u.Name, u.Role)
		}
	}
}
