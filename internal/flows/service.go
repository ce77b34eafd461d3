package flows

import "context"

// Service is the centralized flow runner built once by the root engine.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Identify.VerifyToken != nil
}

func (s Service) Login(ctx context.Context, identifier, secret string) (*LoginResult, error) {
	return RunLogin(ctx, identifier, secret, s.deps.Login)
}

func (s Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	return RunRegister(ctx, req, s.deps.Register)
}

func (s Service) DeleteAccount(ctx context.Context, userID int64, authorize func(string) bool) error {
	deps := s.deps.DeleteAccount
	deps.Authorize = authorize
	return RunDeleteAccount(ctx, userID, deps)
}

func (s Service) Identify(ctx context.Context, token string) (*IdentifyRecord, error) {
	return RunIdentify(ctx, token, s.deps.Identify)
}

func (s Service) Join(ctx context.Context, sessionID, userID int64) error {
	return RunJoin(ctx, sessionID, userID, s.deps.Membership)
}

func (s Service) Leave(ctx context.Context, sessionID, userID int64) error {
	return RunLeave(ctx, sessionID, userID, s.deps.Membership)
}
