// Package pagelens turns an already-rendered HTML document and its source
// URL into a canonical, deduplicated record of structured facts: headings,
// links, media, fonts, colors, contact identifiers, meta and resource
// references, and normalized content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, phonenumbers/, rod/).
package pagelens
