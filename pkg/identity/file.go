package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"onionkeys/pkg/onion"
)

// DefaultFileMode is used for files holding secret key material.
const DefaultFileMode fs.FileMode = 0o600

var ErrFileExists = errors.New("identity: file already exists")

// Load reads an identity document, picking the format from the extension.
func Load(path string) (Identity, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Identity{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Identity{}, err
	}
	defer wipeBytes(data)
	id, err := Unmarshal(data, f)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Debugf("Loaded identity %s from '%s'", id.Address, path)
	return id, nil
}

// Save writes id next to path and renames it into place, refusing to
// replace an existing file.
func Save(path string, id Identity, perm fs.FileMode) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if fileExists(path) {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	}
	data, err := Marshal(id, f)
	if err != nil {
		return err
	}
	defer wipeBytes(data)
	if err := writeFileAtomic(path, data, perm); err != nil {
		return err
	}
	logrus.Infof("Wrote identity %s to '%s'", id.Address, path)
	return nil
}

// ImportTorDir reads the keys of a tor HiddenServiceDir. The public key and
// hostname files are optional, but must agree with the secret key if present.
func ImportTorDir(dir string) (Identity, error) {
	data, err := os.ReadFile(filepath.Join(dir, onion.SecretKeyFileName))
	if err != nil {
		return Identity{}, err
	}
	defer wipeBytes(data)
	sk, err := onion.ParseTorSecretKeyFile(data)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", onion.SecretKeyFileName, err)
	}
	id := New(sk)

	if data, err := os.ReadFile(filepath.Join(dir, onion.PublicKeyFileName)); err == nil {
		pk, err := onion.ParseTorPublicKeyFile(data)
		if err != nil {
			return Identity{}, fmt.Errorf("%s: %w", onion.PublicKeyFileName, err)
		}
		if pk != id.PublicKey {
			return Identity{}, fmt.Errorf("%s: %w", onion.PublicKeyFileName, ErrPublicKeyMismatch)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Identity{}, err
	}

	if data, err := os.ReadFile(filepath.Join(dir, onion.HostnameFileName)); err == nil {
		addr, err := onion.ParseHostnameFile(data)
		if err != nil {
			return Identity{}, fmt.Errorf("%s: %w", onion.HostnameFileName, err)
		}
		if addr != id.Address {
			return Identity{}, fmt.Errorf("%s: %w", onion.HostnameFileName, ErrAddressMismatch)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Identity{}, err
	}

	logrus.Debugf("Imported identity %s from tor directory '%s'", id.Address, dir)
	return id, nil
}

// ExportTorDir writes id in the layout tor expects for a HiddenServiceDir.
// The directory is created with mode 0700 if missing.
func ExportTorDir(dir string, id Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	files := []struct {
		name string
		data []byte
	}{
		{onion.SecretKeyFileName, onion.MarshalTorSecretKeyFile(id.SecretKey)},
		{onion.PublicKeyFileName, onion.MarshalTorPublicKeyFile(id.PublicKey)},
		{onion.HostnameFileName, onion.MarshalHostnameFile(id.Address)},
	}
	defer wipeBytes(files[0].data)
	for _, file := range files {
		path := filepath.Join(dir, file.name)
		if fileExists(path) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}
	for _, file := range files {
		if err := writeFileAtomic(filepath.Join(dir, file.name), file.data, DefaultFileMode); err != nil {
			return err
		}
	}
	logrus.Infof("Exported identity %s to tor directory '%s'", id.Address, dir)
	return nil
}

func fileExists(filePath string) bool {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return false
	}
	return true
}

func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
