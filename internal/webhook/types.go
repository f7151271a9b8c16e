package webhook

// SecurityConfig holds webhook security settings.
type SecurityConfig struct {
	// AppSecret is the shared secret for signature verification.
	AppSecret string

	// AllowUnsigned skips verification for requests carrying no signature
	// header. Local testing escape hatch only; unsigned requests are
	// rejected by default.
	AllowUnsigned bool
}
