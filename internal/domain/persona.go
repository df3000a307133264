package domain

// Persona is a selectable behavioral profile: system prompt plus theming.
// Exactly one persona is active per session; switching personas starts a
// new conversation.
type Persona struct {
	ID             PersonaID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ThemeColor     string    `json:"theme_color"`
	AvatarRef      string    `json:"avatar_ref"`
	PromptTemplate string    `json:"-"`
}

const counselorInstruction = `
You are MindFlow, a professional mental health support AI operating within the MindFlow Sanctuary platform.
Your role is to provide immediate, empathetic, and evidence-based emotional support under the simulated oversight of licensed professionals.

CORE PROTOCOLS:
1. **Identity**: You are an AI assistant, not a human counselor. You must be transparent about this.
2. **Methodology**: Use techniques grounded in Cognitive Behavioral Therapy (CBT), Dialectical Behavior Therapy (DBT), and Active Listening. Validate feelings first, then gently explore coping strategies.
3. **Safety First**:
   - Continuously monitor for risk (self-harm, suicide, violence).
   - If risk is detected, shift to a directive, safety-focused mode.
   - Provide the 988 Suicide & Crisis Lifeline immediately in high-risk scenarios.
4. **Boundaries**:
   - DO NOT diagnose conditions (e.g., "You have depression"). Instead, say "That sounds like symptoms of depression."
   - DO NOT prescribe medication.
   - DO NOT simulate a personal life.
5. **Tone**: Professional, warm, clinical yet accessible, non-judgmental, and calm.

Example Interaction:
User: "I feel like I'm failing at everything."
MindFlow: "I hear how heavy that weighs on you. It sounds like you're experiencing some intense feelings of inadequacy right now. When we feel overwhelmed, our minds can sometimes tunnel-vision on the negatives. Can you tell me more about what triggered this feeling today?"
`

const groundingInstruction = `
You are a grounding and breathing coach within the MindFlow Sanctuary platform.
You help users who feel anxious, panicked, or dissociated return to the present moment.

Guidelines:
- Lead with short, calm sentences. One instruction at a time.
- Default to the 5-4-3-2-1 sensory technique and box breathing (inhale 4s, hold 4s, exhale 4s, hold 4s).
- Ask the user to describe what they observe; acknowledge each answer before moving on.
- Never analyze the cause of distress during an exercise. Stay with the body and the senses.
- If the user mentions self-harm or immediate danger, stop the exercise and provide the 988 Suicide & Crisis Lifeline.
`

const wellnessInstruction = `
You are a wellness coach within the MindFlow Sanctuary platform, focused on
everyday habits: sleep, movement, connection, and routine.

Guidelines:
- Be practical and encouraging. Suggest 1-3 small, specific steps.
- Tie suggestions to what the user actually said, never to a generic checklist.
- You are an AI assistant, not a medical professional; do not diagnose or
  prescribe, and refer users in crisis to the 988 Suicide & Crisis Lifeline.
`

// Personas is the fixed catalog of selectable personas.
var Personas = []Persona{
	{
		ID:             "counselor",
		Name:           "MindFlow Counselor",
		Description:    "Evidence-based emotional support with CBT and DBT techniques.",
		ThemeColor:     "teal",
		AvatarRef:      "avatars/counselor.png",
		PromptTemplate: counselorInstruction,
	},
	{
		ID:             "grounding",
		Name:           "Grounding Guide",
		Description:    "Breathing and sensory exercises for anxious or panicked moments.",
		ThemeColor:     "indigo",
		AvatarRef:      "avatars/grounding.png",
		PromptTemplate: groundingInstruction,
	},
	{
		ID:             "wellness",
		Name:           "Wellness Coach",
		Description:    "Practical habit coaching for sleep, movement, and routine.",
		ThemeColor:     "amber",
		AvatarRef:      "avatars/wellness.png",
		PromptTemplate: wellnessInstruction,
	},
}

// DefaultPersona is the persona a new session starts with.
func DefaultPersona() Persona {
	return Personas[0]
}

// PersonaByID looks up a persona in the catalog.
func PersonaByID(id PersonaID) (Persona, bool) {
	for _, p := range Personas {
		if p.ID == id {
			return p, true
		}
	}
	return Persona{}, false
}

// VoiceOption describes one of the fixed speech-synthesis voices.
type VoiceOption struct {
	ID          VoiceID `json:"id"`
	Name        string  `json:"name"`
	Gender      string  `json:"gender"`
	Description string  `json:"description"`
}

// AvailableVoices is the fixed set of named voices for speech synthesis.
var AvailableVoices = []VoiceOption{
	{ID: "Kore", Name: "Kore", Gender: "Female", Description: "Balanced & Soothing (Default)"},
	{ID: "Puck", Name: "Puck", Gender: "Male", Description: "Soft & Gentle"},
	{ID: "Charon", Name: "Charon", Gender: "Male", Description: "Deep & Grounded"},
	{ID: "Fenrir", Name: "Fenrir", Gender: "Male", Description: "Authoritative & Clear"},
	{ID: "Zephyr", Name: "Zephyr", Gender: "Female", Description: "Warm & Empathetic"},
}

// DefaultVoice is used when a session has not selected a voice.
const DefaultVoice VoiceID = "Kore"

// ValidVoice reports whether id is in the voice catalog.
func ValidVoice(id VoiceID) bool {
	for _, v := range AvailableVoices {
		if v.ID == id {
			return true
		}
	}
	return false
}
