package domain

import "github.com/google/uuid"

// ResourceRef is a bookable resource as seen by this service
type ResourceRef struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
}

// UserRef is a user display projection
type UserRef struct {
	ID   uuid.UUID
	Name string
}

// ResourceNames builds an id -> name map
func ResourceNames(resources []ResourceRef) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}
	return names
}

// UserNames builds an id -> name map
func UserNames(users []UserRef) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

// NameOr returns names[id] or the fallback when the id is unknown
func NameOr(names map[uuid.UUID]string, id uuid.UUID, fallback string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return fallback
}
