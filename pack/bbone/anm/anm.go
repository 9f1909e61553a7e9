package anm

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrNoFrames is returned when a timeline is requested from an animation
// without a single frame. The flattener never fabricates frames.
var ErrNoFrames = errors.New("animation has no frames")

// NewFromData decodes the animation section. Both the bare animation shape
// and the {"animation": {...}} wrapper emitted by newer packers are
// accepted. A frameless animation is still returned: it stays browsable,
// only flattening rejects it.
func NewFromData(data []byte) (*Animation, error) {
	var anim Animation
	if err := json.Unmarshal(data, &anim); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal animation")
	}

	if len(anim.Frames) == 0 {
		var wrapped struct {
			Animation *Animation `json:"animation"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil &&
			wrapped.Animation != nil && len(wrapped.Animation.Frames) > 0 {
			return wrapped.Animation, nil
		}
	}

	return &anim, nil
}
