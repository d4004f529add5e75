package dto

// Version is the per-version manifest (e.g. 1.20.4.json).
type Version struct {
	ID         Text           `json:"id"`
	Type       Text           `json:"type"`
	MainClass  Text           `json:"mainClass"`
	Downloads  *Downloads     `json:"downloads"`
	Logging    *Logging       `json:"logging"`
	AssetIndex *AssetIndexRef `json:"assetIndex"`
	Libraries  LibraryList    `json:"libraries"`
}

// Downloads holds the version-level downloads.
type Downloads struct {
	Client         *Artifact `json:"client"`
	ClientMappings *Artifact `json:"client_mappings"`
}

// UnmarshalJSON ignores non-object values.
func (d *Downloads) UnmarshalJSON(data []byte) error {
	type plain Downloads
	return decodeIf(data, '{', (*plain)(d))
}

// Artifact is an object describing a downloadable file.
type Artifact struct {
	// Path of the file relative to the libraries folder. Not set for the
	// client jar itself.
	Path Text `json:"path"`
	SHA1 Text `json:"sha1"`
	URL  Text `json:"url"`
}

// UnmarshalJSON ignores non-object values.
func (a *Artifact) UnmarshalJSON(data []byte) error {
	type plain Artifact
	return decodeIf(data, '{', (*plain)(a))
}

// Logging describes the logging configuration download.
type Logging struct {
	Client *LoggingClient `json:"client"`
}

// UnmarshalJSON ignores non-object values.
func (l *Logging) UnmarshalJSON(data []byte) error {
	type plain Logging
	return decodeIf(data, '{', (*plain)(l))
}

// LoggingClient is the client side logging descriptor.
type LoggingClient struct {
	Argument Text      `json:"argument"`
	File     *Artifact `json:"file"`
	Type     Text      `json:"type"`
}

// UnmarshalJSON ignores non-object values.
func (l *LoggingClient) UnmarshalJSON(data []byte) error {
	type plain LoggingClient
	return decodeIf(data, '{', (*plain)(l))
}

// AssetIndexRef points at the asset index for the version.
type AssetIndexRef struct {
	ID   Text `json:"id"`
	SHA1 Text `json:"sha1"`
	URL  Text `json:"url"`
}

// UnmarshalJSON ignores non-object values.
func (a *AssetIndexRef) UnmarshalJSON(data []byte) error {
	type plain AssetIndexRef
	return decodeIf(data, '{', (*plain)(a))
}

// LibraryList is the libraries array; non-array values decode as empty.
type LibraryList []Library

// UnmarshalJSON ignores non-array values.
func (l *LibraryList) UnmarshalJSON(data []byte) error {
	var list []Library
	if err := decodeIf(data, '[', &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// Library is one entry of the libraries array.
type Library struct {
	Name      Text              `json:"name"`
	Downloads *LibraryDownloads `json:"downloads"`
	Rules     RuleList          `json:"rules"`
}

// UnmarshalJSON ignores non-object values.
func (l *Library) UnmarshalJSON(data []byte) error {
	type plain Library
	return decodeIf(data, '{', (*plain)(l))
}

// LibraryDownloads holds the plain artifact and platform classifiers.
type LibraryDownloads struct {
	Artifact    *Artifact   `json:"artifact"`
	Classifiers Classifiers `json:"classifiers"`
}

// UnmarshalJSON ignores non-object values.
func (d *LibraryDownloads) UnmarshalJSON(data []byte) error {
	type plain LibraryDownloads
	return decodeIf(data, '{', (*plain)(d))
}

// Classifiers maps classifier keys such as "natives-linux" to artifacts.
type Classifiers map[string]*Artifact

// UnmarshalJSON ignores non-object values.
func (c *Classifiers) UnmarshalJSON(data []byte) error {
	var m map[string]*Artifact
	if err := decodeIf(data, '{', &m); err != nil {
		return err
	}
	*c = m
	return nil
}

// RuleList is the rules array of a library.
type RuleList []Rule

// UnmarshalJSON ignores non-array values.
func (r *RuleList) UnmarshalJSON(data []byte) error {
	var list []Rule
	if err := decodeIf(data, '[', &list); err != nil {
		return err
	}
	*r = list
	return nil
}

// Rule restricts a library to some platforms.
type Rule struct {
	Action Text    `json:"action"`
	OS     *OSRule `json:"os"`
}

// UnmarshalJSON ignores non-object values.
func (r *Rule) UnmarshalJSON(data []byte) error {
	type plain Rule
	return decodeIf(data, '{', (*plain)(r))
}

// OSRule is the os section of a rule.
type OSRule struct {
	Name Text `json:"name"`
	Arch Text `json:"arch"`
}

// UnmarshalJSON ignores non-object values.
func (o *OSRule) UnmarshalJSON(data []byte) error {
	type plain OSRule
	return decodeIf(data, '{', (*plain)(o))
}
