package kafka

import "time"

// Event is a domain change notification published after commit
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id,omitempty"`
	RecipeID  uint      `json:"recipe_id,omitempty"`
	AuthorID  uint      `json:"author_id,omitempty"`
	Relation  string    `json:"relation,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeRecipeCreated       = "recipe.created"
	EventTypeRecipeUpdated       = "recipe.updated"
	EventTypeRecipeDeleted       = "recipe.deleted"
	EventTypeRelationAdded       = "relation.added"
	EventTypeRelationRemoved     = "relation.removed"
	EventTypeSubscriptionAdded   = "subscription.added"
	EventTypeSubscriptionRemoved = "subscription.removed"
)

// DefaultTopic receives every foodgram event
const DefaultTopic = "foodgram-events"

// key keeps events of one recipe, or else one user, on one partition
func (e Event) key() string {
	if e.RecipeID != 0 {
		return "recipe_" + uitoa(e.RecipeID)
	}
	return "user_" + uitoa(e.UserID)
}
