package users

import "time"

var QueryTimeoutDuration = time.Second * 5

// AnonymousEmail is shown for authors whose identity cannot be resolved.
const AnonymousEmail = "Anonymous"
