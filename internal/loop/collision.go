package loop

// resolveCollisions applies one tick of hits, bombing and end-of-game checks, in order.
func (s *Session) resolveCollisions(dt float64) {
	s.checkRocketInvaderCollisions()
	s.dropBombs(dt)
	s.checkBombShipCollisions()
	s.checkInvaderShipCollisions()
	s.checkOutcome()
}

// checkRocketInvaderCollisions removes each invader hit by a rocket along with
// the first rocket that hit it. A rocket is consumed by its first hit.
func (s *Session) checkRocketInvaderCollisions() {
	invaders := s.invaders[:0]
	for _, inv := range s.invaders {
		hit := -1
		for j, p := range s.rockets {
			if inv.Contains(p.X, p.Y) {
				hit = j
				break
			}
		}
		if hit < 0 {
			invaders = append(invaders, inv)
			continue
		}
		s.rockets = append(s.rockets[:hit], s.rockets[hit+1:]...)
		s.score += s.cfg.PointsPerInvader
	}
	s.invaders = invaders
}

// dropBombs gives the front invader of every file a chance to bomb.
func (s *Session) dropBombs(dt float64) {
	chance := s.cfg.BombRate * dt
	for _, inv := range frontRank(s.invaders) {
		if s.rng.Float64() < chance {
			v := s.cfg.BombMinVelocity + s.rng.Float64()*(s.cfg.BombMaxVelocity-s.cfg.BombMinVelocity)
			s.bombs = append(s.bombs, inv.DropBomb(v))
		}
	}
}

// checkBombShipCollisions costs one life per bomb that lands on the ship.
func (s *Session) checkBombShipCollisions() {
	if s.ship == nil {
		return
	}
	bombs := s.bombs[:0]
	for _, b := range s.bombs {
		if s.ship.Contains(b.X, b.Y) {
			s.lives--
			continue
		}
		bombs = append(bombs, b)
	}
	s.bombs = bombs
}

// checkInvaderShipCollisions ends the game if any invader touches the ship.
func (s *Session) checkInvaderShipCollisions() {
	if s.ship == nil {
		return
	}
	for _, inv := range s.invaders {
		if inv.Overlaps(s.ship) {
			s.lives = 0
			return
		}
	}
}

// checkOutcome moves to game over once lives run out, or halts the session
// when the formation has been cleared. Defeat leaves the scheduler running so
// the game over screen keeps drawing and Fire can restart; only victory stops it.
func (s *Session) checkOutcome() {
	if s.lives <= 0 {
		s.log.Info("game lost", "score", s.score, "level", s.level)
		s.moveToState(gameOverState{})
		if s.onLost != nil {
			s.onLost(s)
		}
		return
	}
	if len(s.invaders) == 0 && !s.won {
		s.won = true
		s.score += s.cfg.VictoryBonus * s.level
		s.scheduler.Stop()
		s.log.Info("game won", "score", s.score, "level", s.level)
		if s.onWon != nil {
			s.onWon(s)
		}
	}
}
