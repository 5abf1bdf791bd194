package handlers

// StatusFromError exposes statusFromError to the external handlers_test package.
var StatusFromError = statusFromError
