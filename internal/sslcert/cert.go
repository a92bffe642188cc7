package sslcert

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Generator генератор самоподписанных TLS сертификатов.
// Хранит базовый шаблон сертификата.
type Generator struct {
	cert *x509.Certificate
}

// New создает генератор с шаблоном по умолчанию:
// localhost (127.0.0.1 и ::1), срок действия 10 лет,
// клиентская и серверная аутентификация.
func New() (*Generator, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)) //nolint:mnd
	if err != nil {
		return nil, fmt.Errorf("generate serial number: %w", err)
	}
	cert := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{"linkstats"},
		},
		IPAddresses: []net.IP{
			net.IPv4(127, 0, 0, 1), //nolint:mnd
			net.IPv6loopback,
		},
		DNSNames:  []string{"localhost"},
		NotBefore: time.Now(),
		NotAfter:  time.Now().AddDate(10, 0, 0), //nolint:mnd
		ExtKeyUsage: []x509.ExtKeyUsage{
			x509.ExtKeyUsageClientAuth,
			x509.ExtKeyUsageServerAuth,
		},
		KeyUsage: x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
	}
	return &Generator{cert: cert}, nil
}

// MustNew аналогичен New(), но в случае ошибки вызывает панику.
func MustNew() *Generator {
	g, err := New()
	if err != nil {
		panic(err)
	}
	return g
}

// Modifier модификатор шаблона сертификата перед генерацией.
type Modifier struct {
	apply func(*x509.Certificate)
}

func Modify(fn func(*x509.Certificate)) Modifier {
	return Modifier{apply: fn}
}

// Generate генерирует новую пару сертификат/приватный ключ в формате PEM.
func (g *Generator) Generate(modifiers ...Modifier) ([]byte, []byte, error) {
	cert := g.cert
	for _, m := range modifiers {
		m.apply(cert)
	}

	privKey, errKey := rsa.GenerateKey(rand.Reader, 4096) //nolint:mnd
	if errKey != nil {
		return nil, nil, fmt.Errorf("generate private key: %w", errKey)
	}
	certBytes, errCert := x509.CreateCertificate(rand.Reader, cert, cert, &privKey.PublicKey, privKey)
	if errCert != nil {
		return nil, nil, fmt.Errorf("generate certificate: %w", errCert)
	}

	var certPEM bytes.Buffer
	if err := pem.Encode(&certPEM, &pem.Block{Type: "CERTIFICATE", Bytes: certBytes}); err != nil {
		return nil, nil, fmt.Errorf("pem encode certificate: %w", err)
	}

	var keyPEM bytes.Buffer
	if err := pem.Encode(&keyPEM, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privKey),
	}); err != nil {
		return nil, nil, fmt.Errorf("pem encode RSA: %w", err)
	}

	return certPEM.Bytes(), keyPEM.Bytes(), nil
}

// EnsurePair проверяет пару PEM файлов по указанным путям и генерирует
// новую, если файлы отсутствуют, пусты или сертификат просрочен.
func (g *Generator) EnsurePair(certPath, keyPath string, modifiers ...Modifier) error {
	errCheck := g.checkPair(certPath, keyPath)
	if errCheck == nil {
		return nil
	}
	if !errors.Is(errCheck, ErrBlankPEM) && !errors.Is(errCheck, ErrCertExpired) && !errors.Is(errCheck, os.ErrNotExist) {
		return fmt.Errorf("check certificate pair: %w", errCheck)
	}

	certPEM, keyPEM, errGen := g.Generate(modifiers...)
	if errGen != nil {
		return errGen
	}

	if err := os.WriteFile(certPath, certPEM, 0600); err != nil { //nolint:mnd
		return fmt.Errorf("save certificate: %w", err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0600); err != nil { //nolint:mnd
		return fmt.Errorf("save private key: %w", err)
	}
	return nil
}

// checkPair валидирует существующую пару PEM файлов.
func (g *Generator) checkPair(certPath, keyPath string) error {
	certBytes, errCert := os.ReadFile(certPath)
	if errCert != nil {
		return errCert //nolint:wrapcheck
	}
	keyBytes, errKey := os.ReadFile(keyPath)
	if errKey != nil {
		return errKey //nolint:wrapcheck
	}
	if len(certBytes) == 0 || len(keyBytes) == 0 {
		return ErrBlankPEM
	}

	block, _ := pem.Decode(certBytes)
	if block == nil {
		return errors.New("pem decode: block is nil")
	}
	if block.Type != "CERTIFICATE" {
		return errors.New("certificate type is not CERTIFICATE")
	}

	cert, errParse := x509.ParseCertificate(block.Bytes)
	if errParse != nil {
		return fmt.Errorf("parse certificate: %w", errParse)
	}

	if cert.NotBefore.After(time.Now()) {
		return ErrCertNotValidYet
	}
	if cert.NotAfter.Before(time.Now()) {
		return ErrCertExpired
	}
	return nil
}
