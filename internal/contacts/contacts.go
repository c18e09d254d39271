// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Package contacts provides the validated address book over the metadata
// store. Contact names resolve to checksummed Rootstock addresses so
// transfer targets can be given by name.
package contacts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/model"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/wallet"
)

var (
	// ErrInvalidAddress is returned when a contact address is not a
	// 20-byte hex address.
	ErrInvalidAddress = errors.New("invalid contact address")

	// ErrInvalidName is returned for empty names and for names shaped
	// like hex addresses, which would shadow address resolution.
	ErrInvalidName = errors.New("invalid contact name")

	// ErrNotFound is returned when no contact matches the given name.
	ErrNotFound = errors.New("contact not found")
)

// Service provides address-book operations over a metadata store.
type Service struct {
	store db.Store
}

// New returns a Service backed by the given store.
func New(store db.Store) *Service {
	return &Service{store: store}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if wallet.IsHexAddress(name) {
		return "", fmt.Errorf("%w: %q looks like an address", ErrInvalidName, name)
	}
	return name, nil
}

// Add stores a new contact. The address is checksummed and the network
// normalized before the insert; a name collision surfaces as
// db.ErrDuplicate.
func (s *Service) Add(name, address, network, notes string) (model.Contact, error) {
	name, err := validateName(name)
	if err != nil {
		return model.Contact{}, err
	}
	if !wallet.IsHexAddress(address) {
		return model.Contact{}, fmt.Errorf("%w: %s", ErrInvalidAddress, address)
	}
	address = wallet.ChecksumAddress(address)
	network, err = provider.NormalizeNetwork(network)
	if err != nil {
		return model.Contact{}, err
	}

	id, err := s.store.AddContact(name, address, network, notes)
	if err != nil {
		return model.Contact{}, err
	}
	return model.Contact{ID: id, Name: name, Address: address, Network: network, Notes: notes}, nil
}

// List returns all contacts ordered by name.
func (s *Service) List() ([]model.Contact, error) {
	return s.store.GetAllContacts()
}

// Get returns the contact with the given name.
func (s *Service) Get(name string) (*model.Contact, error) {
	c, err := s.store.GetContactByName(strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c, nil
}

// Remove deletes the contact with the given name.
func (s *Service) Remove(name string) error {
	c, err := s.Get(name)
	if err != nil {
		return err
	}
	return s.store.DeleteContact(c.ID)
}

// Rename changes a contact's name, keeping the uniqueness constraint.
func (s *Service) Rename(oldName, newName string) error {
	newName, err := validateName(newName)
	if err != nil {
		return err
	}
	c, err := s.Get(oldName)
	if err != nil {
		return err
	}
	return s.store.RenameContact(c.ID, newName)
}

// SetNotes replaces the notes on a contact.
func (s *Service) SetNotes(name, notes string) error {
	c, err := s.Get(name)
	if err != nil {
		return err
	}
	return s.store.UpdateContactNotes(c.ID, notes)
}

// Resolve turns a transfer target into a checksummed address. A value
// that already is an address is checksummed and returned; anything else
// is treated as a contact name.
func (s *Service) Resolve(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if wallet.IsHexAddress(recipient) {
		return wallet.ChecksumAddress(recipient), nil
	}
	c, err := s.Get(recipient)
	if err != nil {
		return "", err
	}
	return c.Address, nil
}
