// Package session implements the line-oriented interactive program: the main
// menu, the viewing options menu, paged and full result tables, the
// selection prompt and the detail view.
//
// All console access goes through the Terminal interface, so a session can
// be driven by a scripted terminal in tests. Observable steps (page flushes,
// re-prompts, detail views, exports) are reported through Options.OnEvent.
package session
