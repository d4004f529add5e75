package dto

// AssetIndex maps asset names to content-addressed objects.
type AssetIndex struct {
	Objects AssetObjects `json:"objects"`
}

// AssetObjects is keyed by the asset's logical name
// (e.g. "minecraft/sounds/ambient/cave/cave1.ogg").
type AssetObjects map[string]AssetObject

// UnmarshalJSON ignores non-object values.
func (a *AssetObjects) UnmarshalJSON(data []byte) error {
	var m map[string]AssetObject
	if err := decodeIf(data, '{', &m); err != nil {
		return err
	}
	*a = m
	return nil
}

// AssetObject is one stored object, addressed by its SHA-1.
type AssetObject struct {
	Hash Text `json:"hash"`
}

// UnmarshalJSON ignores non-object values.
func (a *AssetObject) UnmarshalJSON(data []byte) error {
	type plain AssetObject
	return decodeIf(data, '{', (*plain)(a))
}
