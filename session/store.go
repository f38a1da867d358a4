package session

import (
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/fooddash/fooddash-go/apiclient"
	"github.com/fooddash/fooddash-go/models"
	"github.com/fooddash/fooddash-go/utils"
)

// Storage keys. Every value is persisted as a plain string row.
const (
	keyToken            = "token"
	keyRole             = "role"
	keyUserID           = "user_id"
	keyEmail            = "email"
	keyName             = "name"
	keyPartnerActive    = "partner_active"
	keyOnboardingDone   = "onboarding_done"
	keySelectedLocation = "selected_location"
)

type entry struct {
	Key   string `gorm:"primaryKey;type:varchar(50)"`
	Value string `gorm:"type:text"`
}

func (entry) TableName() string { return "session_entries" }

// Store persists the session to the device's local sqlite database. A read
// failure is logged and treated as "no session": the app falls open to
// guest mode instead of surfacing storage errors to every caller.
type Store struct {
	db *gorm.DB
}

// Open creates or opens the device database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &apiclient.StorageError{Op: "open session store", Err: err}
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing gorm connection, migrating the entry table.
func NewWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, &apiclient.StorageError{Op: "migrate session store", Err: err}
	}
	return &Store{db: db}, nil
}

// Patch carries the fields to merge into the persisted session. Nil fields
// are left untouched.
type Patch struct {
	Token            *string
	Role             *models.Role
	UserID           *uint
	Email            *string
	Name             *string
	PartnerActive    *bool
	OnboardingDone   *bool
	SelectedLocation *string
}

// Save merges and persists the non-nil fields of p.
func (s *Store) Save(p Patch) error {
	rows := make([]entry, 0, 8)
	if p.Token != nil {
		rows = append(rows, entry{keyToken, *p.Token})
	}
	if p.Role != nil {
		rows = append(rows, entry{keyRole, string(*p.Role)})
	}
	if p.UserID != nil {
		rows = append(rows, entry{keyUserID, strconv.FormatUint(uint64(*p.UserID), 10)})
	}
	if p.Email != nil {
		rows = append(rows, entry{keyEmail, *p.Email})
	}
	if p.Name != nil {
		rows = append(rows, entry{keyName, *p.Name})
	}
	if p.PartnerActive != nil {
		rows = append(rows, entry{keyPartnerActive, strconv.FormatBool(*p.PartnerActive)})
	}
	if p.OnboardingDone != nil {
		rows = append(rows, entry{keyOnboardingDone, strconv.FormatBool(*p.OnboardingDone)})
	}
	if p.SelectedLocation != nil {
		rows = append(rows, entry{keySelectedLocation, *p.SelectedLocation})
	}
	if len(rows) == 0 {
		return nil
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
	if err != nil {
		utils.ErrorLogger.Errorf("session save failed: %v", err)
		return &apiclient.StorageError{Op: "save session", Err: err}
	}
	return nil
}

// SaveSession persists a full session snapshot, typically after login.
func (s *Store) SaveSession(sess models.Session) error {
	return s.Save(Patch{
		Token:            &sess.Token,
		Role:             &sess.Role,
		UserID:           &sess.UserID,
		Email:            &sess.Email,
		Name:             &sess.Name,
		PartnerActive:    &sess.PartnerActive,
		OnboardingDone:   &sess.OnboardingDone,
		SelectedLocation: &sess.SelectedLocation,
	})
}

// Load rehydrates the last persisted session. Any storage failure yields
// the guest default, never an error.
func (s *Store) Load() models.Session {
	var rows []entry
	if err := s.db.Find(&rows).Error; err != nil {
		utils.ErrorLogger.Errorf("session load failed, falling back to guest: %v", err)
		return models.GuestSession()
	}

	sess := models.GuestSession()
	for _, row := range rows {
		switch row.Key {
		case keyToken:
			sess.Token = row.Value
		case keyRole:
			sess.Role = models.ParseRole(row.Value)
		case keyUserID:
			if id, err := strconv.ParseUint(row.Value, 10, 64); err == nil {
				sess.UserID = uint(id)
			}
		case keyEmail:
			sess.Email = row.Value
		case keyName:
			sess.Name = row.Value
		case keyPartnerActive:
			sess.PartnerActive = row.Value == "true"
		case keyOnboardingDone:
			sess.OnboardingDone = row.Value == "true"
		case keySelectedLocation:
			sess.SelectedLocation = row.Value
		}
	}
	return sess
}

// Clear removes all persisted fields, resetting to guest defaults.
func (s *Store) Clear() error {
	if err := s.db.Where("1 = 1").Delete(&entry{}).Error; err != nil {
		utils.ErrorLogger.Errorf("session clear failed: %v", err)
		return &apiclient.StorageError{Op: "clear session", Err: err}
	}
	return nil
}
