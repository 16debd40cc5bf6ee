// Command cryptoengine-demo exercises the cryptography engine end to end:
// a synchronous digest, an asynchronous digest, an Ed25519 signature
// verification, and a lookup of the SHA-384 null hash.
package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log/slog"
	"os"
	"time"

	cryptoengine "github.com/hashgraph/hedera-platform-crypto"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	engine, err := cryptoengine.New(cryptoengine.DefaultSettings(), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new engine:", err)
		os.Exit(1)
	}

	payload := []byte("hello, hashgraph")
	h, err := engine.DigestSync(payload, 0, len(payload), cryptoengine.DigestSHA384)
	if err != nil {
		fmt.Fprintln(os.Stderr, "digest:", err)
		os.Exit(1)
	}
	fmt.Println("sha-384 digest:", h.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	future := engine.DigestAsync(payload, 0, len(payload), cryptoengine.DigestSHA512)
	asyncHash, err := future.Wait(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "digest async:", err)
		os.Exit(1)
	}
	fmt.Println("sha-512 digest (async):", asyncHash.String())

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate key:", err)
		os.Exit(1)
	}
	sigBytes := ed25519.Sign(priv, payload)
	sig, err := cryptoengine.NewSignature(cryptoengine.SigEd25519, sigBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new signature:", err)
		os.Exit(1)
	}
	ok, err := engine.VerifySync(payload, sig, pub)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify:", err)
		os.Exit(1)
	}
	fmt.Println("ed25519 verify:", ok)

	nullHash, _ := engine.NullHash(cryptoengine.DigestSHA384)
	fmt.Println("sha-384 null hash:", nullHash.String())
}
