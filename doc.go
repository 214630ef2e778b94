// Package flashclass is the client SDK for the FlashClass teacher portal
// API. It owns the session lifecycle on the client side: credential storage,
// unverified token inspection, bearer injection, the single
// refresh-and-retry cycle on 401 responses, and route gating.
//
// Credential stores:
//   - CredentialStore is a synchronous key/value contract. MemoryStore keeps
//     credentials for the life of the process, FileStore persists them as a
//     JSON document under a config directory, and BunStore keeps them in a
//     local sqlite database through Bun. All three are last-write-wins with
//     no cross-process invalidation.
//
// Session manager:
//   - SessionManager centralizes the Unknown/Checking/Anonymous/Authenticated
//     transition graph and is the single writer of session state. Every
//     operation resolves to a nil-or-structured error; nothing panics past
//     this boundary. Route guards read the manager's snapshot and never
//     mutate it.
//
// Token claims:
//   - Claims are decoded from the access token payload without signature
//     verification. The server is the authority; decoded claims are display
//     and identity hints only, never an authorization input beyond "does it
//     parse".
package flashclass
