package domain

// EffectType identifies which outbound host call an Effect records.
type EffectType string

// Standard Effect Types
const (
	// EffectShow requests the host to render or reposition the callout.
	EffectShow EffectType = "show"

	// EffectHighlight requests the host to move visual emphasis between elements.
	EffectHighlight EffectType = "highlight"

	// EffectEnd requests the host to tear the callout down.
	EffectEnd EffectType = "end"

	// EffectWarn reports a non-fatal convention violation.
	EffectWarn EffectType = "warn"
)

// Effect is a serialisable record of one controller-to-host call.
// Hosts that cannot receive callbacks directly (HTTP, MCP, JSON) exchange effects instead.
type Effect struct {
	Type        EffectType `json:"type"`
	Placement   *Placement `json:"placement,omitempty"`
	Description string     `json:"description,omitempty"`
	Previous    *Element   `json:"previous,omitempty"`
	Current     *Element   `json:"current,omitempty"`
	Message     string     `json:"message,omitempty"`
}
