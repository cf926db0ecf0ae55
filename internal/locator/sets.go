package locator

// Set names understood by the authenticator and the joiner. A config file may
// override any of these via [[selectors.<name>]] tables.
const (
	SetIdentifierInput  = "identifier-input"
	SetIdentifierNext   = "identifier-next"
	SetSecretInput      = "secret-input"
	SetSecretNext       = "secret-next"
	SetLandingIndicator = "landing-indicator"
	SetMicrophoneMute   = "microphone-mute"
	SetCameraMute       = "camera-mute"
	SetJoinControl      = "join-control"
	SetJoinedIndicator  = "joined-indicator"
	SetMicrophoneMuted  = "microphone-muted"
	SetCameraMuted      = "camera-muted"
	SetLeaveControl     = "leave-control"
	SetLeftIndicator    = "left-indicator"
	SetMicrophoneEnable = "microphone-enable"
)

// Defaults returns the built-in fallback sets for the Google sign-in and
// Meet surfaces. Entries are ordered most stable first; the trailing
// jscontroller/jsname selectors are internal Google markers that survive
// label translation but churn across releases.
func Defaults() Sets {
	return Sets{
		SetIdentifierInput: {
			Css("input#identifierId"),
			Css("input[type='email']"),
			Css("input[name='identifier']"),
			Css("input[autocomplete='username']"),
		},
		SetIdentifierNext: {
			Css("div#identifierNext"),
			Css("button#identifierNext"),
			Css("input#identifierNext"),
		},
		SetSecretInput: {
			Css("input[name='Passwd']"),
			Css("input[name='Passwd'][type='password']"),
			Css("input[autocomplete='current-password']:not([aria-hidden='true'])"),
			Css("input[type='password'][tabindex='0']"),
			Css("input[jsname='YPqjbf']"),
		},
		SetSecretNext: {
			Css("div#passwordNext"),
			Css("button[type='submit']"),
			Css("input[type='submit']"),
		},
		SetLandingIndicator: {
			Css("#gb"),
			Css("[data-email]"),
			Css("[aria-label*='Google Account']"),
		},
		SetMicrophoneMute: {
			Css("div[role='button'][aria-label*='Turn off microphone']"),
			Css("div[aria-label*='microphone'][role='button']"),
			Css("div[data-is-muted='false'][aria-label*='microphone']"),
			Css("button[aria-label*='Turn off microphone']"),
			Css("div[jscontroller='t2mBxb']"),
		},
		SetCameraMute: {
			Css("div[role='button'][aria-label*='Turn off camera']"),
			Css("div[aria-label*='camera'][role='button']"),
			Css("div[data-is-muted='false'][aria-label*='camera']"),
			Css("button[aria-label*='Turn off camera']"),
			Css("div[jscontroller='bwqwSd']"),
		},
		SetJoinControl: {
			Css("button[jsname='Qx7uuf']"),
			Css("button[aria-label*='Join now']"),
			Css("button[aria-label*='Ask to join']"),
			Css("div[data-tooltip*='Join']"),
		},
		SetJoinedIndicator: {
			Css("div[data-self-name]"),
			Css("div[aria-label*='Meeting details']"),
			Css("div[aria-label*='participants']"),
			Css("button[aria-label*='Leave call']"),
		},
		SetMicrophoneMuted: {
			Xpath("//div[@data-is-muted='true'][@data-tooltip-id='microphone']"),
		},
		SetCameraMuted: {
			Xpath("//div[@data-is-muted='true'][@data-tooltip-id='camera']"),
		},
		SetLeaveControl: {
			Css("button[aria-label*='Leave call']"),
			Css("div[data-tooltip*='Leave call']"),
			Css("button[aria-label*='End call']"),
			Css("button[jsname='CQylAd']"),
			Css("div[jsname='CQylAd']"),
		},
		SetLeftIndicator: {
			Css("div[aria-label*='left the meeting']"),
			Css("button[aria-label*='Rejoin']"),
		},
		SetMicrophoneEnable: {
			Css("button[aria-label*='Turn on microphone']"),
			Css("div[data-tooltip*='Turn on microphone']"),
			Css("button[aria-label*='Unmute']"),
			Css("div[aria-label*='Unmute']"),
		},
	}
}
