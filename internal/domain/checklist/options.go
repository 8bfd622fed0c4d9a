package checklist

// ListOptions provides filtering options for listing checklist items.
// Results are ordered by due date descending, then creation time descending,
// matching the dashboard's display order.
type ListOptions struct {
	TaskID string
	Status Status
	Limit  int
	Offset int
}
