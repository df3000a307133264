package domain

// Citation is a reference returned alongside an assistant reply, sourced
// by the model's search grounding. Exactly one of Web or Place is set.
type Citation struct {
	Web   *WebCitation   `json:"web,omitempty"`
	Place *PlaceCitation `json:"place,omitempty"`
}

type WebCitation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type PlaceCitation struct {
	PlaceID string `json:"place_id"`
	Title   string `json:"title"`
	URI     string `json:"uri"`
}

// RiskAssessment is the result of the safety-analysis call on a user turn.
type RiskAssessment struct {
	Level      RiskLevel `json:"level"`
	Sentiment  float64   `json:"sentiment"` // always within [-10, 10]
	Flags      []string  `json:"flags"`
	Rationale  string    `json:"rationale"`
	AssessedAt Timestamp `json:"assessed_at"`
}

// ConversationTurn is one exchange unit in a session's timeline.
// Turns are appended in order and never deleted; the only post-hoc
// mutation is attaching the risk assessment to a user turn.
type ConversationTurn struct {
	ID        TurnID    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt Timestamp `json:"created_at"`

	// RiskState is only meaningful for user turns. It is explicit so
	// callers never infer "in flight" from Assessment being nil.
	RiskState  RiskState       `json:"risk_state,omitempty"`
	Assessment *RiskAssessment `json:"assessment,omitempty"`

	// Citations are only attached to assistant turns, synchronously
	// with the reply.
	Citations []Citation `json:"citations,omitempty"`
}

// Session is a single ephemeral conversation. It is never persisted
// beyond process memory; discarding it resolves any bad state.
type Session struct {
	ID        SessionID `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`

	Context SessionContext      `json:"context"`
	Turns   []*ConversationTurn `json:"turns"`

	// CrisisAlert is raised when an assessment comes back High or
	// Critical and stays raised until explicitly dismissed.
	CrisisAlert bool `json:"crisis_alert"`
}

// SessionContext is the ambient state threaded through every remote call.
type SessionContext struct {
	Persona            Persona      `json:"persona"`
	UserLocation       *Coordinates `json:"user_location,omitempty"`
	VoiceOutputEnabled bool         `json:"voice_output_enabled"`
	SelectedVoice      VoiceID      `json:"selected_voice"`
}
