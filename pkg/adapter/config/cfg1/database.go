// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/vacancies/pkg/adapter/db/postgres"
	"github.com/momeni/vacancies/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/vacancies/pkg/adapter/hash/scram"
	"github.com/momeni/vacancies/pkg/core/log"
	"github.com/momeni/vacancies/pkg/core/repo"
	scrami "github.com/momeni/vacancies/pkg/core/scram"
	"github.com/momeni/vacancies/pkg/core/usecase/schemauc"
)

// Names of the main and temporary passwords files in the PassDir.
const (
	PassFile    = ".pgpass"
	NewPassFile = ".pgpass.new"
)

// ErrNoPassword indicates that a passwords file has no line for the
// asked host, port, database, and role.
var ErrNoPassword = errors.New("no matching password line")

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like vacancies
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. It is appended to the repo.AdminRole and
	// repo.NormalRole, so parallel tests may use distinct roles in
	// one database cluster.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies how passwords should be hashed before being
	// stored in the database. Either of scram-sha-1 or scram-sha-256
	// (the default) may be used.
	AuthMethod string `yaml:"auth-method,omitempty"`

	hasher scrami.Hasher
}

// String returns the connection information of `d` without passwords.
func (d Database) String() string {
	return fmt.Sprintf("Database{%s:%d/%s}", d.Host, d.Port, d.Name)
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// The password is read from the .pgpass file in the d.PassDir folder
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// If no connection could be established, passwords might have been
// updated by an interrupted RenewPasswords call. So the .pgpass.new
// file is tried too and if it works, it is moved over the .pgpass file.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (schemauc.Pool, error) {
	path := filepath.Join(d.PassDir, PassFile)
	u, err := d.ConnectionURL(r, path)
	if err == nil {
		var p *postgres.Pool
		if p, err = postgres.NewPool(ctx, u); err == nil {
			return p, nil
		}
	}
	newPath := filepath.Join(d.PassDir, NewPassFile)
	log.Warn(
		ctx, "trying the temporary pass-file",
		log.Str("path", path), log.Str("new-path", newPath),
		log.Err("error", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the postgresql URL for connecting to the `d`
// database with the `r` role (plus the RoleSuffix). Its password is
// read from the `path` file which may contain empty or `#`-commented
// lines in addition to the pgpass formatted lines.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r + d.RoleSuffix
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", ErrNoPassword
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// NewSchemaRepo instantiates a fresh Schema repository which suffixes
// role names by d.RoleSuffix and hashes passwords as configured by the
// d.AuthMethod. The ValidateAndNormalize must be called beforehand.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new random passwords for the given roles
// and records them in the .pgpass.new file in the `d.PassDir`. Then,
// it calls `change` in order to update those passwords in the database
// (possibly in a transaction which is not committed yet). The returned
// finalizer moves the .pgpass.new file over the .pgpass file and must
// be called after that transaction commits.
//
// The `d.RoleSuffix` will be appended to the role names in the file,
// while the `change` function receives the unsuffixed roles and is
// expected to add the same suffix.
func (d Database) RenewPasswords(
	ctx context.Context,
	change func(
		ctx context.Context, roles []repo.Role, passwords []string,
	) error,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(roles))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		passwords[i] = enc.EncodeToString(b)
		lines[i] = fmt.Sprintf(
			"%s:%s:%s\n", prfx, r+d.RoleSuffix, passwords[i],
		)
	}
	orgPath := filepath.Join(d.PassDir, PassFile)
	newPath := filepath.Join(d.PassDir, NewPassFile)
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return func() error {
		return os.Rename(newPath, orgPath)
	}, nil
}

// ValidateAndNormalize validates the database settings and creates the
// passwords hasher based on the AuthMethod.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return errors.New("database host is missing")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("invalid database port: %d", d.Port)
	case d.Name == "":
		return errors.New("database name is missing")
	}
	switch am := d.AuthMethod; am {
	case "scram-sha-1":
		d.hasher = scram.SHA1()
	case "":
		d.AuthMethod = "scram-sha-256"
		fallthrough
	case "scram-sha-256":
		d.hasher = scram.SHA256()
	default:
		return fmt.Errorf(
			"unsupported database authentication method: %q", am,
		)
	}
	return nil
}
