package game

// Behaviours on the athlete's pushdown machine. Each one reads the world,
// adds steering to the body and may replace itself on the stack; the
// replacement runs from the next tick.

// idle faces the puck and waits for something to react to.
func (a *Athlete) idle(ps *PlayState) {
	if ps.Frozen() {
		return
	}
	t := &ps.tuning
	puck := ps.puck
	a.faceTowards(puck.Position, t.FaceSpeed)

	if !puck.Free() {
		a.switchTo(ps.possessionState(a.team))
		return
	}
	if a.distTo(puck.Position) >= t.PursueRange {
		return
	}
	if ps.ShouldPursuePuck(a) {
		a.switchTo(StatePursuePuck)
		return
	}
	a.supportClosestTeammate(ps)
}

// supportClosestTeammate drifts to the support spot of whichever teammate is
// nearest the puck. Nothing happens when that teammate is this athlete.
func (a *Athlete) supportClosestTeammate(ps *PlayState) {
	closest := ps.ClosestToPuck(a.team)
	if closest == nil || closest == a {
		return
	}
	target := a.supportPosition(ps, closest)
	a.body.ApplySteering(a.body.Arrive(target, ps.tuning.SupportSlowRadius))
}

// pursuePuck skates at a free puck while keeping off teammates.
func (a *Athlete) pursuePuck(ps *PlayState) {
	t := &ps.tuning
	puck := ps.puck
	a.body.ApplySteering(a.body.Separation(ps.teammateBodies(a), t.SeparationRadius))

	d := a.distTo(puck.Position)
	if !ps.IsClosestToPuck(a) && d > t.PursueGiveUpDist {
		a.switchTo(StateIdle)
		return
	}
	if d > t.PursueRange {
		a.switchTo(StateIdle)
		return
	}
	if !puck.Free() {
		a.switchTo(ps.possessionState(a.team))
		return
	}
	a.body.ApplySteering(a.body.Seek(puck.Position, 0))
}

// attack runs while the own team carries the puck.
func (a *Athlete) attack(ps *PlayState) {
	t := &ps.tuning
	carrier := ps.puck.Owner()
	switch {
	case carrier == nil:
		a.switchTo(StatePursuePuck)
		return
	case carrier.team != a.team:
		a.switchTo(StateStealPuck)
		return
	}

	if carrier == a {
		a.body.ApplySteering(a.body.Seek(ps.OpponentGoalPosition(a.team), 0))
		a.body.ApplySteering(a.body.CollisionAvoidance(ps.opponentBodies(a.team), t.AvoidanceRadius))
		return
	}

	if a.carrierAhead(ps, carrier) {
		a.body.ApplySteering(a.body.FollowLeader(carrier.body))
	} else {
		a.body.ApplySteering(a.body.Arrive(a.supportPosition(ps, carrier), t.SupportSlowRadius))
	}
	a.body.ApplySteering(a.body.Separation(ps.teammateBodies(a), t.SeparationRadius))
}

// stealPuck hunts an opposing carrier that is within reach.
func (a *Athlete) stealPuck(ps *PlayState) {
	t := &ps.tuning
	carrier := ps.puck.Owner()
	switch {
	case carrier == nil:
		a.switchTo(StatePursuePuck)
		return
	case carrier.team == a.team:
		a.switchTo(StateAttack)
		return
	}

	if a.distTo(carrier.body.Position) >= t.StealRange {
		a.switchTo(StateDefend)
		return
	}
	a.body.ApplySteering(a.body.Pursuit(carrier.body))
	a.body.ApplySteering(a.body.Separation(ps.teammateBodies(a), t.StealSeparation))
}

// defend skates home and reacts to the puck like idle does, except that a
// distant opposing carrier is left alone.
func (a *Athlete) defend(ps *PlayState) {
	if ps.Frozen() {
		return
	}
	t := &ps.tuning
	puck := ps.puck
	a.body.ApplySteering(a.body.Arrive(a.initial, t.DefendSlowRadius))

	if carrier := puck.Owner(); carrier != nil {
		if carrier.team == a.team {
			a.switchTo(StateAttack)
			return
		}
		if a.distTo(carrier.body.Position) < t.StealRange {
			a.switchTo(StateStealPuck)
			return
		}
	} else if a.distTo(puck.Position) < t.PursueRange && ps.ShouldPursuePuck(a) {
		a.switchTo(StatePursuePuck)
		return
	}

	if a.distTo(a.initial) <= t.DefendArriveDist {
		a.switchTo(StatePatrol)
	}
}

// patrol loiters around home and goes back to defend when it drifts off.
func (a *Athlete) patrol(ps *PlayState) {
	a.body.ApplySteering(a.body.Wander())
	if a.distTo(a.initial) > ps.tuning.PatrolLeash {
		a.switchTo(StateDefend)
	}
}

// celebrateGoal holds still in the logic sense; only a reset leaves it.
func (a *Athlete) celebrateGoal(*PlayState) {}
