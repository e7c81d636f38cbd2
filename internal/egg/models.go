package egg

import (
	"time"

	"gorm.io/datatypes"
)

type Speaker string

const (
	SpeakerUser Speaker = "USER"
	SpeakerEgg  Speaker = "EGG"
	SpeakerPet  Speaker = "PET" // reserved for post-hatch chat
)

type Egg struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID uint64 `gorm:"index;not null" json:"ownerId"`
	// ActiveOwnerID mirrors OwnerID while the egg is unhatched and is NULL
	// afterwards; its unique index allows one unhatched egg per owner.
	ActiveOwnerID *uint64        `gorm:"uniqueIndex:uniq_egg_active_owner" json:"-"`
	Hatched       bool           `gorm:"not null;default:false" json:"hatched"`
	CreatedAt     time.Time      `json:"createdAt"`
	HatchedAt     *time.Time     `json:"hatchedAt"`
	TraitJSON     datatypes.JSON `gorm:"column:trait_json" json:"traitJson,omitempty"`
}

func (Egg) TableName() string { return "eggs" }

type ConversationLog struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   uint64    `gorm:"index;not null" json:"-"`
	EggID     uint64    `gorm:"index:idx_conv_egg_created,priority:1;not null" json:"eggId"`
	PetID     *uint64   `gorm:"index" json:"petId,omitempty"`
	Speaker   Speaker   `gorm:"type:varchar(8);not null" json:"speaker"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index:idx_conv_egg_created,priority:2" json:"createdAt"`
}

func (ConversationLog) TableName() string { return "conversation_logs" }

type Pet struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FromEggID   uint64    `gorm:"uniqueIndex;not null" json:"eggId"`
	OwnerID     uint64    `gorm:"index;not null" json:"ownerId"`
	Species     string    `gorm:"type:varchar(64);not null" json:"species"`
	Name        string    `gorm:"type:varchar(64);not null" json:"name"`
	Personality string    `gorm:"type:text;not null" json:"personality"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Pet) TableName() string { return "pets" }

// TalkResult is what a single talk turn returns to the caller.
type TalkResult struct {
	EggID uint64 `json:"eggId"`
	Reply string `json:"reply"`
}

// HatchedEvent is published once a pet has been committed.
type HatchedEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     uint64    `json:"user_id"`
	EggID      uint64    `json:"egg_id"`
	PetID      uint64    `json:"pet_id"`
	Species    string    `json:"species"`
	OccurredAt time.Time `json:"occurred_at"`
}

const EventEggHatched = "egg.hatched"
