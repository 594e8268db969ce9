package engine

// Navigator drives a rover through an ordered command sequence, stopping at
// the first move that does not succeed. The zero value is ready to use.
type Navigator struct{}

// Execute applies commands to r in order and returns the final state.
//
// Turns never stop the run. The first move returning ObstacleEncountered or
// OutOfBounds halts it and becomes the run status; later commands are not
// executed. An exhausted sequence, including an empty one, ends in Success.
//
// Execute panics with *InvalidCommandError if a command outside
// {TurnLeft, TurnRight, Move} is supplied.
func (Navigator) Execute(r *Rover, commands []Command) Outcome {
	return run(r, commands, nil)
}

// Trace behaves like Execute and also returns one Step per executed command,
// ending with the failing move when the run halts early.
func (Navigator) Trace(r *Rover, commands []Command) (Outcome, []Step) {
	steps := make([]Step, 0, len(commands))
	outcome := run(r, commands, func(s Step) {
		steps = append(steps, s)
	})
	return outcome, steps
}

func run(r *Rover, commands []Command, record func(Step)) Outcome {
	status := Success

	for i, cmd := range commands {
		from, headingBefore := r.position, r.heading
		result := Success

		switch cmd {
		case TurnLeft:
			r.TurnLeft()
		case TurnRight:
			r.TurnRight()
		case Move:
			result = r.Move()
		default:
			panic(&InvalidCommandError{Command: cmd, Index: i})
		}

		if record != nil {
			record(Step{
				Index:         i + 1,
				Command:       cmd,
				From:          from,
				To:            r.position,
				HeadingBefore: headingBefore,
				HeadingAfter:  r.heading,
				Status:        result,
			})
		}

		if result != Success {
			status = result
			break
		}
	}

	return Outcome{
		Position: r.position,
		Heading:  r.heading,
		Status:   status,
	}
}
