package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"mercurio/contexts/identity-access/onboarding-service/domain/entities"
	domainerrors "mercurio/contexts/identity-access/onboarding-service/domain/errors"
)

// Repository persists client and seller profile rows. Profile creation is a
// saga step: a unique-email collision surfaces as ErrProfileExists so the
// saga compensates instead of leaving a half-registered account.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) CreateClientProfile(ctx context.Context, profile entities.ClientProfile) error {
	row := clientProfileModel{
		ProfileID:       profile.ProfileID,
		IdentityUserID:  profile.IdentityUserID,
		Email:           profile.Email,
		Phone:           profile.Phone,
		InstitutionName: profile.InstitutionName,
		InstitutionType: profile.InstitutionType,
		TaxID:           profile.TaxID,
		Address:         profile.Address,
		City:            profile.City,
		Country:         profile.Country,
		Representative:  profile.Representative,
		CreatedAt:       profile.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *Repository) CreateSellerProfile(ctx context.Context, profile entities.SellerProfile) error {
	row := sellerProfileModel{
		ProfileID:      profile.ProfileID,
		IdentityUserID: profile.IdentityUserID,
		Email:          profile.Email,
		Name:           profile.Name,
		Phone:          profile.Phone,
		Territory:      profile.Territory,
		CreatedAt:      profile.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrProfileExists
		}
		return err
	}
	return nil
}

type clientProfileModel struct {
	ProfileID       string    `gorm:"column:profile_id;primaryKey"`
	IdentityUserID  string    `gorm:"column:identity_user_id;uniqueIndex"`
	Email           string    `gorm:"column:email;uniqueIndex"`
	Phone           string    `gorm:"column:phone"`
	InstitutionName string    `gorm:"column:institution_name"`
	InstitutionType string    `gorm:"column:institution_type"`
	TaxID           string    `gorm:"column:tax_id"`
	Address         string    `gorm:"column:address"`
	City            string    `gorm:"column:city"`
	Country         string    `gorm:"column:country"`
	Representative  string    `gorm:"column:representative"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (clientProfileModel) TableName() string {
	return "client_profiles"
}

type sellerProfileModel struct {
	ProfileID      string    `gorm:"column:profile_id;primaryKey"`
	IdentityUserID string    `gorm:"column:identity_user_id;uniqueIndex"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	Name           string    `gorm:"column:name"`
	Phone          string    `gorm:"column:phone"`
	Territory      string    `gorm:"column:territory"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (sellerProfileModel) TableName() string {
	return "seller_profiles"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
