package eventbus

// Logger is the minimal logging contract needed by the audit subscriber.
type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// AuditSubscriber writes auth and plan events to the server log.
type AuditSubscriber struct {
	logger Logger
}

// NewAuditSubscriber attaches an audit logger to the bus.
func NewAuditSubscriber(bus *Bus, logger Logger) (*AuditSubscriber, error) {
	s := &AuditSubscriber{logger: logger}

	if err := bus.Subscribe(EventAuthLogin, s.onLogin); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(EventAuthLogout, s.onLogout); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(EventPlanGenerated, s.onPlanGenerated); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(EventSystemError, s.onSystemError); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AuditSubscriber) onLogin(data AuthEventData) {
	s.logger.Info("[audit] login user=%s email=%s ip=%s", data.UserID, data.Email, data.IP)
}

func (s *AuditSubscriber) onLogout(data AuthEventData) {
	s.logger.Info("[audit] logout user=%s", data.UserID)
}

func (s *AuditSubscriber) onPlanGenerated(data PlanEventData) {
	s.logger.Info("[audit] plan generated user=%s model=%s fallback=%v cached=%v",
		data.UserID, data.Model, data.Fallback, data.Cached)
}

func (s *AuditSubscriber) onSystemError(data SystemEventData) {
	s.logger.Warn("[audit] %s: %s", data.Component, data.Message)
}
