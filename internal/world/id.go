package world

import "github.com/google/uuid"

// ID identifies a world across restarts and is the key a persisted save
// file is addressed by, distinct from a bot.ID (original_source's
// utils/world_id.rs: "WorldId(Id)", an opaque id separate from a bot's).
type ID uuid.UUID

// NewID generates a fresh random world id.
func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IDFromString parses a world id previously rendered by String, used when
// loading a persisted world (spec.md 6).
func IDFromString(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, err
	}
	return ID(u), nil
}
