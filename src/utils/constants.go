package utils

const ShortDashDateLayout = "2006-01-02"

// SessionCookieName is the cookie carrying the opaque session identifier.
const SessionCookieName = "session_id"
