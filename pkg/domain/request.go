package domain

// Request is the normalized gateway request: one subscriber keystroke
// plus session identity.
type Request struct {
	SessionID  string `json:"sessionID"`
	UserID     string `json:"userID"`
	Msisdn     string `json:"msisdn"`
	Network    string `json:"network,omitempty"`
	Input      string `json:"userData"`
	NewSession bool   `json:"newSession"`
}

// Response is what goes back to the gateway: reply text plus the
// continue/end flag.
type Response struct {
	SessionID       string `json:"sessionID"`
	UserID          string `json:"userID"`
	Msisdn          string `json:"msisdn"`
	Message         string `json:"message"`
	ContinueSession bool   `json:"continueSession"`
}

// Context is what an action handler receives: the inbound request
// (synthesized from the session identity plus the raw input) and the
// live, mutable session.
type Context struct {
	Request   Request
	Session   *Session
	ActionKey string
}

// Input returns the raw subscriber input that triggered the action.
func (c *Context) Input() string { return c.Request.Input }
