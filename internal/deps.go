package internal

import (
	"bitwise74/notes-api/config"
	"bitwise74/notes-api/internal/repository"
	"bitwise74/notes-api/internal/service"
	"bitwise74/notes-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Argon  *security.ArgonHash
	Tokens *security.Tokens
	Mailer service.Mailer

	Guard      *repository.Guard
	Notes      *repository.Notes
	Categories *repository.Categories
	Links      *repository.Links
	Users      *repository.Users
}

// NewDeps wires every dependency the handlers need around one database pool
func NewDeps(db *gorm.DB, cfg *config.Config) *Deps {
	return &Deps{
		DB:     db,
		Config: cfg,
		Argon:  security.New(),
		Tokens: security.NewTokens(cfg.JWT.Secret, cfg.JWT.TTL),
		Mailer: service.NewMailer(&cfg.Mail),

		Guard:      repository.NewGuard(db),
		Notes:      repository.NewNotes(db),
		Categories: repository.NewCategories(db),
		Links:      repository.NewLinks(db),
		Users:      repository.NewUsers(db),
	}
}
