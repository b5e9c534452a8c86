package main

import (
	"flag"
	"fmt"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/config"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/database"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	name := flag.String("name", "", "display name")
	role := flag.String("role", models.RoleAdmin, "admin or viewer")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email ... -password ... [-name ...] [-role admin|viewer]")
		return
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	user := &models.User{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Role:     *role,
	}

	if err := database.CreateUser(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s (%s, %s)\n", user.Name, user.Email, user.Role)
}
