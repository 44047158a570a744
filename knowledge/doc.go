// Package knowledge houses concrete implementations of core.KnowledgeBase.
// The interface itself lives in the core package to centralize domain
// contracts. Keeping only implementations here prevents higher level packages
// (engine, façade) from depending on concrete storage.
//
// Add additional backends (remote catalogs, search services, etc.) in this
// package without changing any calling code; only the wiring layer needs to
// decide which implementation to instantiate.
package knowledge
