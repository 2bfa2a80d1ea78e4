package config

// SampleConfig returns a fully commented configuration file.
func SampleConfig() string {
	return `# SentiScope configuration
version: "1.0"

# Analyzer client used by "sentiscope analyze", "tui" and "watch"
client:
  # Root of the backend; requests go to <backend_url>/analyze
  backend_url: "http://localhost:8000"
  # HTTP timeout, 0 means no timeout
  timeout: 0s

# Backend started by "sentiscope serve"
server:
  address: ":8000"
  # Origins allowed by CORS
  allowed_origins:
    - "http://localhost:3000"
    - "http://127.0.0.1:3000"
  # Longest accepted text, in characters
  max_text_length: 10000
  shutdown_timeout: 10s
  # Backend used by the web form; empty analyzes in-process
  backend_url: ""

# Classifier behind POST /analyze
ai:
  # openai (any OpenAI-compatible API, Groq by default), ollama or vader
  provider: "openai"
  model: "qwen/qwen3-32b"
  endpoint: "https://api.groq.com/openai"
  # Leave empty to read GROQ_API_KEY from the environment or .env
  api_key: ""
  timeout: 30s
  max_retries: 3
  temperature: 0

output:
  # text, json or markdown
  default_format: "text"
  # auto, always or never
  color_mode: "auto"
  verbose: false

ui:
  # default, high-contrast or minimal
  theme: "default"
`
}

// MinimalSampleConfig returns a compact configuration with the settings
// most people change.
func MinimalSampleConfig() string {
	return `version: "1.0"
client:
  backend_url: "http://localhost:8000"
ai:
  provider: "openai"
  model: "qwen/qwen3-32b"
output:
  default_format: "text"
`
}
