package mailbox

// Precomputed movement templates. They describe geometry only: rays stop at
// the board edge, never at occupancy, which callers apply themselves.

// Ray directions. Index d means the same compass direction from every square,
// so rookRays[k][d] continues the line of rookRays[s][d] past k.
const (
	north = iota
	south
	east
	west
)

const (
	northEast = iota
	northWest
	southEast
	southWest
)

var rookSteps = [4][2]int{north: {1, 0}, south: {-1, 0}, east: {0, 1}, west: {0, -1}}
var bishopSteps = [4][2]int{northEast: {1, 1}, northWest: {1, -1}, southEast: {-1, 1}, southWest: {-1, -1}}

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var (
	// rookRays[sq][d] lists squares outward from sq, nearest first.
	rookRays [64][4][]Square
	// bishopRays[sq][d] lists squares outward from sq, nearest first.
	bishopRays [64][4][]Square
	// queenRays[sq] holds the four rook rays followed by the four bishop rays.
	queenRays [64][8][]Square

	knightTargets [64][]Square
	kingTargets   [64][]Square

	// pawnPushes[color][sq] holds the single advance and, from the starting
	// rank, the double advance.
	pawnPushes [2][64][]Square
	// pawnCaptures[color][sq] holds the diagonal forward squares.
	pawnCaptures [2][64][]Square

	// Knight and king targets wrapped as one-element [][]Square views.
	knightTemplate [64][1][]Square
	kingTemplate   [64][1][]Square
	pawnTemplate   [2][64][2][]Square
)

func init() {
	initRayTemplates()
	initStepTemplates()
	initPawnTemplates()
}

func onBoard(row, col int) bool { return row >= 0 && row < 8 && col >= 0 && col < 8 }

func walk(sq Square, step [2]int) []Square {
	var ray []Square
	row, col := sq.Row()+step[0], sq.Column()+step[1]
	for onBoard(row, col) {
		ray = append(ray, NewSquare(row, col))
		row += step[0]
		col += step[1]
	}
	return ray
}

func initRayTemplates() {
	for sq := Square(0); sq < 64; sq++ {
		for d, step := range rookSteps {
			rookRays[sq][d] = walk(sq, step)
			queenRays[sq][d] = rookRays[sq][d]
		}
		for d, step := range bishopSteps {
			bishopRays[sq][d] = walk(sq, step)
			queenRays[sq][4+d] = bishopRays[sq][d]
		}
	}
}

func offsets(sq Square, offs [8][2]int) []Square {
	targets := make([]Square, 0, 8)
	for _, off := range offs {
		row, col := sq.Row()+off[0], sq.Column()+off[1]
		if onBoard(row, col) {
			targets = append(targets, NewSquare(row, col))
		}
	}
	return targets
}

func initStepTemplates() {
	for sq := Square(0); sq < 64; sq++ {
		knightTargets[sq] = offsets(sq, knightOffsets)
		kingTargets[sq] = offsets(sq, kingOffsets)
		knightTemplate[sq][0] = knightTargets[sq]
		kingTemplate[sq][0] = kingTargets[sq]
	}
}

// pawnDirection returns the row step of c's pawns.
func pawnDirection(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// pawnStartRow and lastRow are relative to each side.
func pawnStartRow(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

func lastRow(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func initPawnTemplates() {
	for _, c := range [2]Color{White, Black} {
		dir := pawnDirection(c)
		for sq := Square(0); sq < 64; sq++ {
			row, col := sq.Row(), sq.Column()
			var pushes, captures []Square
			if onBoard(row+dir, col) {
				pushes = append(pushes, NewSquare(row+dir, col))
				if row == pawnStartRow(c) {
					pushes = append(pushes, NewSquare(row+2*dir, col))
				}
				for _, dc := range [2]int{-1, 1} {
					if onBoard(row+dir, col+dc) {
						captures = append(captures, NewSquare(row+dir, col+dc))
					}
				}
			}
			pawnPushes[c][sq] = pushes
			pawnCaptures[c][sq] = captures
			pawnTemplate[c][sq] = [2][]Square{pushes, captures}
		}
	}
}

// Templates returns the geometric destinations of piece p standing on sq,
// ignoring occupancy:
//   - rook, bishop, queen: one sequence per direction, ordered outward
//   - knight, king: a single sequence of every in-range destination
//   - pawn: [forward advances, diagonal captures]
//
// The returned slices are shared tables and must not be modified.
func Templates(p Piece, sq Square) [][]Square {
	switch p.Type() {
	case Rook:
		return rookRays[sq][:]
	case Bishop:
		return bishopRays[sq][:]
	case Queen:
		return queenRays[sq][:]
	case Knight:
		return knightTemplate[sq][:]
	case King:
		return kingTemplate[sq][:]
	case Pawn:
		return pawnTemplate[p.Color()][sq][:]
	}
	return nil
}

// slidingRays returns the rays of a sliding piece type, or nil otherwise.
func slidingRays(pt PieceType, sq Square) [][]Square {
	switch pt {
	case Rook:
		return rookRays[sq][:]
	case Bishop:
		return bishopRays[sq][:]
	case Queen:
		return queenRays[sq][:]
	}
	return nil
}

// isSlider reports whether pt moves along rays.
func isSlider(pt PieceType) bool { return pt == Rook || pt == Bishop || pt == Queen }
