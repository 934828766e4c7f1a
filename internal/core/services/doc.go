// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// QAService owns the uploaded document and the question flow,
// Answerer decides between a grounded answer and the fallback sentence,
// and SettingsService maps the config store onto domain.AppSettings.
package services
