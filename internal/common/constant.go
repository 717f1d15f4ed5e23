package common

// SessionHintKey is the metadata key under which the id of the last
// authenticated user is recorded on this device.
const SessionHintKey = "session_user_id"
