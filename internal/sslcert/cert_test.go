package sslcert

import (
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CertSuite struct {
	suite.Suite
	gen *Generator
}

func TestCertSuite(t *testing.T) {
	suite.Run(t, new(CertSuite))
}

func (s *CertSuite) SetupTest() {
	s.gen = MustNew()
}

func (s *CertSuite) TestGenerate() {
	certPEM, keyPEM, err := s.gen.Generate()
	s.Require().NoError(err)
	s.Require().NotEmpty(certPEM)
	s.Require().NotEmpty(keyPEM)
}

func (s *CertSuite) TestEnsurePair() {
	dir := s.T().TempDir()
	certPath := filepath.Join(dir, "server.crt")
	keyPath := filepath.Join(dir, "server.key")

	s.Run("creates pair when files are missing", func() {
		s.Require().NoError(s.gen.EnsurePair(certPath, keyPath))

		certBytes, errCert := os.ReadFile(certPath)
		s.Require().NoError(errCert)
		s.Require().NotEmpty(certBytes)

		keyBytes, errKey := os.ReadFile(keyPath)
		s.Require().NoError(errKey)
		s.Require().NotEmpty(keyBytes)
	})

	s.Run("keeps valid pair untouched", func() {
		before, _ := os.ReadFile(certPath)
		s.Require().NoError(s.gen.EnsurePair(certPath, keyPath))
		after, _ := os.ReadFile(certPath)
		s.Equal(before, after)
	})

	s.Run("regenerates blank pair", func() {
		s.Require().NoError(os.WriteFile(certPath, nil, 0600))
		s.Require().NoError(os.WriteFile(keyPath, nil, 0600))

		s.Require().NoError(s.gen.EnsurePair(certPath, keyPath))
		s.Require().NoError(s.gen.checkPair(certPath, keyPath))
	})

	s.Run("regenerates expired certificate", func() {
		expired := Modify(func(c *x509.Certificate) {
			c.NotBefore = time.Now().AddDate(-2, 0, 0)
			c.NotAfter = time.Now().AddDate(-1, 0, 0)
		})
		certPEM, keyPEM, errGen := s.gen.Generate(expired)
		s.Require().NoError(errGen)
		s.Require().NoError(os.WriteFile(certPath, certPEM, 0600))
		s.Require().NoError(os.WriteFile(keyPath, keyPEM, 0600))

		s.Require().ErrorIs(MustNew().checkPair(certPath, keyPath), ErrCertExpired)

		fresh := MustNew()
		s.Require().NoError(fresh.EnsurePair(certPath, keyPath))
		s.Require().NoError(fresh.checkPair(certPath, keyPath))
	})
}
