package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worklog/internal/auth"
	"worklog/internal/config"
	"worklog/internal/db"
	"worklog/internal/model"
	"worklog/internal/repository"
)

// Demo data seeded into a fresh database: two teams, four employees,
// one linked account per employee and a week of worklogs each.
type seedEmployee struct {
	name     string
	surname  string
	team     string
	username string
	password string
}

var seedTeams = []string{"Assembly", "Field Service"}

var seedEmployees = []seedEmployee{
	{"Anna", "Kowalska", "Assembly", "akowalska", "akowalska123"},
	{"Piotr", "Nowak", "Assembly", "pnowak", "pnowak123"},
	{"Marek", "Wisniewski", "Field Service", "mwisniewski", "mwisniewski123"},
	{"Ewa", "Zielinska", "Field Service", "ezielinska", "ezielinska123"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Team{},
		&model.Employee{},
		&model.Account{},
		&model.Worklog{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	teamRepo := repository.NewTeamRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	worklogRepo := repository.NewWorklogRepository(gormDB)

	teams, err := seedTeamsIfMissing(ctx, teamRepo)
	if err != nil {
		log.Fatalf("Failed to seed teams: %v", err)
	}

	created := 0
	for _, se := range seedEmployees {
		team, ok := teams[se.team]
		if !ok {
			log.Fatalf("Unknown team %q for employee %s %s", se.team, se.name, se.surname)
		}

		employee := &model.Employee{Name: se.name, Surname: se.surname, TeamID: team.ID}
		if err := employeeRepo.Create(ctx, employee); err != nil {
			log.Fatalf("Failed to create employee %s %s: %v", se.name, se.surname, err)
		}

		if err := createLinkedAccount(ctx, accountRepo, se, employee.ID); err != nil {
			log.Fatalf("Failed to create account %s: %v", se.username, err)
		}

		if err := seedWorklogs(ctx, worklogRepo, employee.ID, se.username); err != nil {
			log.Fatalf("Failed to seed worklogs for %s: %v", se.username, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Teams: %d", len(teams))
	log.Printf("  - Employees with linked accounts: %d", created)
}

// seedTeamsIfMissing creates the demo teams, reusing any that already exist.
func seedTeamsIfMissing(ctx context.Context, repo repository.TeamRepository) (map[string]*model.Team, error) {
	teams := make(map[string]*model.Team, len(seedTeams))
	for _, name := range seedTeams {
		existing, err := repo.FindByName(ctx, name)
		if err == nil {
			teams[name] = existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		team := &model.Team{Name: name}
		if err := repo.Create(ctx, team); err != nil {
			return nil, err
		}
		teams[name] = team
		log.Printf("Created team %q", name)
	}
	return teams, nil
}

func createLinkedAccount(ctx context.Context, repo repository.AccountRepository, se seedEmployee, employeeID uint) error {
	taken, err := repo.ExistsByUsername(ctx, se.username)
	if err != nil {
		return err
	}
	if taken {
		log.Printf("Account %q already exists, skipping", se.username)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(se.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repo.Create(ctx, &model.Account{
		Username:     se.username,
		PasswordHash: string(hashed),
		Role:         auth.RoleUser,
		EmployeeID:   &employeeID,
	})
}

// seedWorklogs logs a standard working week ending yesterday.
func seedWorklogs(ctx context.Context, repo repository.WorklogRepository, employeeID uint, username string) error {
	day := time.Now().AddDate(0, 0, -5)
	for i := 0; i < 5; i++ {
		worklog := &model.Worklog{
			WorkDate:   day.AddDate(0, 0, i),
			EmployeeID: employeeID,
			Hours:      decimal.NewFromFloat(8),
			Meals:      1,
			Nights:     0,
			CreatedBy:  username,
		}
		if err := repo.Create(ctx, worklog); err != nil {
			return err
		}
	}
	return nil
}
