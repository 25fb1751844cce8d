package tower

import (
	"errors"
	"fmt"

	"github.com/danmuck/towerctl/internal/protocol"
)

var ErrMapperUnreachable = errors.New("tower: cannot connect to mapper")

// register announces this tower to the configured mapper: one connection,
// one registration line, disconnect. The mapper never acknowledges.
func (s *Service) register(port string) error {
	conn, err := protocol.Dial(s.cfg.MapperPort)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMapperUnreachable, err)
	}
	defer conn.Close()
	if err := conn.WriteLine(protocol.RegisterLine(s.cfg.ID, port)); err != nil {
		return fmt.Errorf("%w: %v", ErrMapperUnreachable, err)
	}
	return nil
}
