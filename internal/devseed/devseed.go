// Package devseed populates a development database with a small cast of users,
// properties, and reports so every role has something to look at after login.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/UNO-CSCI4830/SureSight-sub001/internal/core"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/data"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/domain/model"
	"github.com/UNO-CSCI4830/SureSight-sub001/internal/service"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB         *sql.DB
	users      *data.UserRepo
	profiles   *service.ProfileService
	properties *service.PropertyService
	reports    *service.ReportService
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	propertyRepo := data.NewPropertyRepo(db)
	return Services{
		DB:    db,
		users: data.NewUserRepo(db),
		profiles: service.NewProfileService(service.ProfileServiceOptions{
			Profiles: data.NewProfileRepo(db),
		}),
		properties: service.NewPropertyService(service.PropertyServiceOptions{
			Properties: propertyRepo,
		}),
		reports: service.NewReportService(service.ReportServiceOptions{
			Reports:    data.NewReportRepo(db),
			Properties: propertyRepo,
		}),
	}
}

// seedUser describes one development account with its completed profile.
type seedUser struct {
	AuthID    string
	Email     string
	FirstName string
	LastName  string
	Role      string
	Company   *string
}

const devPassword = "suresight-dev"

func defaultUsers() []seedUser {
	roofers := "Heartland Roofing LLC"
	carriers := "Mutual of Omaha Claims"
	return []seedUser{
		{AuthID: "seed-homeowner", Email: "homeowner@suresight.local", FirstName: "Harriet", LastName: "Olson", Role: "homeowner"},
		{AuthID: "seed-contractor", Email: "contractor@suresight.local", FirstName: "Carl", LastName: "Tran", Role: "contractor", Company: &roofers},
		{AuthID: "seed-adjuster", Email: "adjuster@suresight.local", FirstName: "Ada", LastName: "Reyes", Role: "adjuster", Company: &carriers},
		{AuthID: "seed-admin", Email: "admin@suresight.local", FirstName: "Avery", LastName: "Kim", Role: "admin"},
	}
}

// Run executes the full development seeding workflow against the provided DB.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	failures := 0
	failures += seedUsers(ctx, svcs, logger)
	failures += seedProperties(ctx, svcs, logger)

	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedUsers(ctx context.Context, svcs Services, logger *slog.Logger) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(devPassword), bcrypt.DefaultCost)
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to hash dev password", "error", err)
		}
		return 1
	}
	hashStr := string(hash)

	failures := 0
	for _, u := range defaultUsers() {
		created, err := ensureUser(ctx, svcs.users, u, &hashStr)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create user", "email", u.Email, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "user already exists"
			if created {
				msg = "created user"
			}
			logger.InfoContext(ctx, msg, "email", u.Email, "role", u.Role)
		}

		if _, err := svcs.profiles.Complete(ctx, u.AuthID, model.CompleteProfileRequest{
			Role:        u.Role,
			CompanyName: u.Company,
		}); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to complete profile", "email", u.Email, "error", err)
			}
			failures++
		}
	}
	return failures
}

func ensureUser(ctx context.Context, users *data.UserRepo, u seedUser, passwordHash *string) (bool, error) {
	authID := u.AuthID
	role := u.Role
	if _, err := users.Create(ctx, core.CreateUserParams{
		AuthID:       &authID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         &role,
		PasswordHash: passwordHash,
	}); err != nil {
		if errors.Is(err, data.ErrUserEmailExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func seedProperties(ctx context.Context, svcs Services, logger *slog.Logger) int {
	homeowner := service.Actor{UserID: "seed-homeowner", Role: "homeowner"}

	existing, err := svcs.properties.List(ctx, homeowner, model.PropertiesListOptions{Limit: 1})
	if err != nil {
		if logger != nil {
			logger.ErrorContext(ctx, "failed to list properties", "error", err)
		}
		return 1
	}
	if len(existing) > 0 {
		if logger != nil {
			logger.InfoContext(ctx, "properties already seeded")
		}
		return 0
	}

	failures := 0
	yearBuilt := 1978
	requests := []model.CreatePropertyRequest{
		{Address: "4912 Dodge St", City: "Omaha", State: "NE", PostalCode: "68132", YearBuilt: &yearBuilt},
		{Address: "211 Pine Crest Dr", City: "Papillion", State: "NE", PostalCode: "68046"},
	}

	for _, req := range requests {
		property, err := svcs.properties.Create(ctx, homeowner, req)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create property", "address", req.Address, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			logger.InfoContext(ctx, "created property", "address", req.Address)
		}

		desc := "Shingle and gutter damage after the June hail storm."
		if _, err := svcs.reports.Create(ctx, homeowner, model.CreateReportRequest{
			PropertyID:  property.ID,
			Title:       "Hail damage to roof",
			Description: &desc,
		}); err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to create report", "property", req.Address, "error", err)
			}
			failures++
		}
	}
	return failures
}
