package server

// ShortSpeechBody is the JSON body of POST /speech/short.
// Omitted flags default to true, speaker to the configured default and speed to 1.
type ShortSpeechBody struct {
	Text       string `json:"text" jsonschema:"required,maxLength=1000" jsonschema_description:"Text to synthesize, at most 1000 characters"`
	Speaker    string `json:"speaker,omitempty" jsonschema:"enum=afra,enum=garsha,enum=sara,enum=dara,enum=poneh,enum=bahar,enum=1,enum=2,enum=3,enum=4,enum=5,enum=6" jsonschema_description:"Voice name or its numeric code (1-6)"`
	Speed      *int   `json:"speed,omitempty" jsonschema:"minimum=1" jsonschema_description:"Speech speed, a positive integer"`
	FilePath   *bool  `json:"file_path,omitempty" jsonschema_description:"Return a URL to the generated file"`
	Base64     *bool  `json:"base64,omitempty" jsonschema_description:"Return the audio as base64"`
	Checksum   *bool  `json:"checksum,omitempty" jsonschema_description:"Return the audio checksum"`
	Timestamps *bool  `json:"timestamps,omitempty" jsonschema_description:"Return word timestamps"`
}

// LongSpeechBody is the JSON body of POST /speech/long.
type LongSpeechBody struct {
	Text    string `json:"text" jsonschema:"required" jsonschema_description:"Text to synthesize in the background"`
	Speaker string `json:"speaker,omitempty" jsonschema:"enum=afra,enum=garsha,enum=sara,enum=dara,enum=poneh,enum=bahar,enum=1,enum=2,enum=3,enum=4,enum=5,enum=6" jsonschema_description:"Voice name or its numeric code (1-6)"`
	Speed   *int   `json:"speed,omitempty" jsonschema:"minimum=1" jsonschema_description:"Speech speed, a positive integer"`
}

type SpeakerInfo struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Archive bool   `json:"archive"`
	Jobs    bool   `json:"jobs"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	GatewayStatus int    `json:"gateway_status,omitempty"`
}
