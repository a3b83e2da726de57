package config

// ResolveToken exposes resolveToken for tests.
var ResolveToken = resolveToken

// Validate exposes validate for tests.
var Validate = validate
