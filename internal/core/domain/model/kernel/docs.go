// Package kernel provides the shared value objects of the OTC domain.
//
// The package includes:
//   - TxHash: a 32-byte transaction hash in its canonical 0x-prefixed hex form
//   - WalletAddress: a lower-cased 20-byte EVM account address
//   - Asset: the tokens an order can trade or be quoted in
//   - UUID: identifiers for records the service mints itself (order events)
//
// Values are immutable once constructed and safe for concurrent use.
package kernel
