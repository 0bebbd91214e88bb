package common

// TokenIssuer is the issuer claim stamped into every token minted by this
// service. Peers validating tokens check against the same value.
const TokenIssuer = "twit2-auth"

// TokenScope is the fixed scope marker for self-issued session tokens.
const TokenScope = "self"
