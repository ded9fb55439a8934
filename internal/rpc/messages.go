package rpc

// Empty is returned by every RPC that has nothing else to report,
// mirroring the protobuf well-known Empty message named in
// original_source/controller/src/lights.rs's generated bindings.
type Empty struct{}

// Color is an RGB triple with channels bounded to [0, 255].
type Color struct {
	R uint32 `json:"r"`
	G uint32 `json:"g"`
	B uint32 `json:"b"`
}

// SetArgs is the request for Set: apply color to every index listed.
type SetArgs struct {
	Indexes []uint32 `json:"indexes"`
	Color   *Color   `json:"color"`
}

// SetAllArgs is the request for SetAll: colors must have exactly one
// entry per pixel on the strip.
type SetAllArgs struct {
	Colors []Color `json:"colors"`
}

// BrightnessArgs is the request for Brightness.
type BrightnessArgs struct {
	Brightness uint32 `json:"brightness"`
}

// StartAnimationArgs is the request for StartAnimation.
type StartAnimationArgs struct {
	ID string `json:"id"`
}

// RegisterAnimationArgs is the request for RegisterAnimation.
type RegisterAnimationArgs struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Payload []byte `json:"payload"`
}

// UnregisterAnimationArgs is the request for UnregisterAnimation.
type UnregisterAnimationArgs struct {
	ID string `json:"id"`
}

// AnimationStatus reports whether RegisterAnimation accepted the
// submitted payload.
type AnimationStatus struct {
	Success bool `json:"success"`
}
