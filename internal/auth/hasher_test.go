package auth

import "testing"

func TestBcryptHasher_HashNeverEqualsPlaintext(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)

	for _, plain := range []string{"a", "password123", "correct horse battery staple"} {
		digest, err := hasher.Hash(plain)
		if err != nil {
			t.Fatalf("Hash(%q) error: %v", plain, err)
		}
		if digest == plain {
			t.Fatalf("digest equals plaintext for %q", plain)
		}
	}
}

func TestBcryptHasher_Verify(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)

	digest, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !hasher.Verify("password123", digest) {
		t.Fatalf("correct password rejected")
	}
	if hasher.Verify("password124", digest) {
		t.Fatalf("wrong password accepted")
	}
	if hasher.Verify("password123", "not-a-bcrypt-digest") {
		t.Fatalf("garbage digest accepted")
	}
}

func TestBcryptHasher_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same password are identical; salting broken")
	}
}
