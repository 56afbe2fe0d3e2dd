package internal

// Recoverer exposes the panic recovery middleware to tests.
var Recoverer = (*Application).recoverer
