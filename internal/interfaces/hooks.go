package interfaces

import "context"

// HookHandler handles a hook event. Handlers may replace data by returning a
// new value; an error aborts the operation that fired the hook.
type HookHandler func(ctx context.Context, data any) (any, error)

// Hook names
const (
	// HookPreSave runs before a save with the flattened []core.MenuEntry.
	HookPreSave = "pre_save"
	// HookPostSave runs after the store accepted a save.
	HookPostSave = "post_save"
	// HookPostMutation runs after every edit with the editor status.
	HookPostMutation = "post_mutation"
	// HookPostLoad runs after a load with the normalized entries.
	HookPostLoad = "post_load"
)
