// Package storyscout discovers user-generated stories from serialized-fiction
// and forum sites, scores their screen/print adaptation potential with a
// generative model, and renders pitch materials into shareable reports.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package storyscout
