package entity

// CredentialGeminiApiKey is the credential name used for the generative
// model API key.
const CredentialGeminiApiKey = "gemini_api_key"
