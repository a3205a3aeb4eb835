/*
Gateway relays trading signals from external strategy platforms.

# Module
  - auth: X-Token gate
  - validate: side/quantity/price contract
  - dedup: bounded signal-id window
  - forward: order placement via the execution client

# Source
  - signals from HTTP POST /signal

# Produce
  - one acknowledgment per signal
  - order placements on the execution service

Every signal terminates in exactly one acknowledgment; duplicates and
normalization failures short-circuit before the execution client is touched.
*/
package gateway
