package gateway

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mfreitas/storegate/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry(Policy{})
}

func (s *RegistrySuite) newClient(id string) *Client {
	return newClient(id, nil, testutil.NopLogger())
}

func (s *RegistrySuite) TestRegisterAndList() {
	_, err := s.registry.Register("c1", "u1", "Ada", s.newClient("c1"))
	s.Require().NoError(err)
	_, err = s.registry.Register("c2", "u2", "Grace", s.newClient("c2"))
	s.Require().NoError(err)

	list := s.registry.ListConnected()
	s.Require().Len(list, 2)
	s.Equal("c1", list[0].ConnectionID)
	s.Equal("u1", list[0].PrincipalID)
	s.Equal("Ada", list[0].DisplayName)
	s.Equal("c2", list[1].ConnectionID)
}

func (s *RegistrySuite) TestRegisterEmptyConnectionIDFails() {
	_, err := s.registry.Register("", "u1", "Ada", s.newClient(""))
	s.Require().ErrorIs(err, ErrInvalidConnection)
	s.Equal(0, s.registry.Len())
}

func (s *RegistrySuite) TestReRegisterOverwrites() {
	_, err := s.registry.Register("c1", "u1", "Ada", s.newClient("c1"))
	s.Require().NoError(err)
	_, err = s.registry.Register("c2", "u2", "Grace", s.newClient("c2"))
	s.Require().NoError(err)

	// Re-authentication on the same connection replaces the entry but keeps
	// its position in the presence list.
	_, err = s.registry.Register("c1", "u1", "Ada L.", s.newClient("c1"))
	s.Require().NoError(err)

	list := s.registry.ListConnected()
	s.Require().Len(list, 2)
	s.Equal("c1", list[0].ConnectionID)
	s.Equal("Ada L.", list[0].DisplayName)
}

func (s *RegistrySuite) TestRemoveIsIdempotent() {
	_, err := s.registry.Register("c1", "u1", "Ada", s.newClient("c1"))
	s.Require().NoError(err)

	s.registry.Remove("c1")
	s.Equal(0, s.registry.Len())

	// Double-disconnect and disconnect-before-register must not fault.
	s.registry.Remove("c1")
	s.registry.Remove("never-registered")
	s.Equal(0, s.registry.Len())
}

func (s *RegistrySuite) TestDisplayNameOf() {
	_, err := s.registry.Register("c1", "u1", "Ada", s.newClient("c1"))
	s.Require().NoError(err)

	s.Equal("Ada", s.registry.DisplayNameOf("c1"))
	s.Equal(UnknownDisplayName, s.registry.DisplayNameOf("c2"))

	s.registry.Remove("c1")
	s.Equal(UnknownDisplayName, s.registry.DisplayNameOf("c1"))
}

func (s *RegistrySuite) TestSinglePerPrincipalEvicts() {
	registry := NewRegistry(Policy{SinglePerPrincipal: true})

	first := s.newClient("c1")
	_, err := registry.Register("c1", "u1", "Ada", first)
	s.Require().NoError(err)

	evicted, err := registry.Register("c2", "u1", "Ada", s.newClient("c2"))
	s.Require().NoError(err)
	s.Same(first, evicted)

	list := registry.ListConnected()
	s.Require().Len(list, 1)
	s.Equal("c2", list[0].ConnectionID)
}

func (s *RegistrySuite) TestCoexistingConnectionsForSamePrincipal() {
	// Default policy: two connections for one principal both appear.
	evicted, err := s.registry.Register("c1", "u1", "Ada", s.newClient("c1"))
	s.Require().NoError(err)
	s.Nil(evicted)
	evicted, err = s.registry.Register("c2", "u1", "Ada", s.newClient("c2"))
	s.Require().NoError(err)
	s.Nil(evicted)

	s.Equal(2, s.registry.Len())
}

func (s *RegistrySuite) TestConcurrentRegisterRemove() {
	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := fmt.Sprintf("c%d-%d", w, i)
				_, err := s.registry.Register(id, fmt.Sprintf("u%d", w), "name", s.newClient(id))
				s.NoError(err)
				s.registry.ListConnected()
				if i%2 == 0 {
					s.registry.Remove(id)
				}
			}
		}(w)
	}
	wg.Wait()

	// Exactly the odd-indexed registrations survive.
	s.Equal(workers*perWorker/2, s.registry.Len())

	surviving := make(map[string]bool)
	for _, c := range s.registry.ListConnected() {
		surviving[c.ConnectionID] = true
	}
	for w := 0; w < workers; w++ {
		for i := 1; i < perWorker; i += 2 {
			s.True(surviving[fmt.Sprintf("c%d-%d", w, i)])
		}
	}
}
