package mailbox

// Color identifies a side.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless piece kind. Movement is derived from it by pure
// table lookups; there is no per-piece behavior beyond that.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

// promotionTypes lists promotion targets in the order moves are emitted.
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// Piece is a (type, color) value packed into a byte:
//   - piece & 7 gives the type in [1..6]
//   - piece & 8 != 0 indicates Black
//
// The zero value NoPiece marks an empty slot.
type Piece uint8

const NoPiece Piece = 0

const (
	WhitePawn   = Piece(Pawn)
	WhiteKnight = Piece(Knight)
	WhiteBishop = Piece(Bishop)
	WhiteRook   = Piece(Rook)
	WhiteQueen  = Piece(Queen)
	WhiteKing   = Piece(King)
	BlackPawn   = Piece(Pawn) | 8
	BlackKnight = Piece(Knight) | 8
	BlackBishop = Piece(Bishop) | 8
	BlackRook   = Piece(Rook) | 8
	BlackQueen  = Piece(Queen) | 8
	BlackKing   = Piece(King) | 8
)

// NewPiece combines a side and a type into a Piece.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p >> 3 & 1) }

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	return string(fenChar(p))
}

// CastlingRights is a bit set of the four castling permissions.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// Has reports whether every right in r2 is held.
func (r CastlingRights) Has(r2 CastlingRights) bool { return r&r2 == r2 }

// String renders the rights in FEN order ("KQkq", "-" when empty).
func (r CastlingRights) String() string {
	if r == NoCastling {
		return "-"
	}
	buf := make([]byte, 0, 4)
	if r&WhiteKingSide != 0 {
		buf = append(buf, 'K')
	}
	if r&WhiteQueenSide != 0 {
		buf = append(buf, 'Q')
	}
	if r&BlackKingSide != 0 {
		buf = append(buf, 'k')
	}
	if r&BlackQueenSide != 0 {
		buf = append(buf, 'q')
	}
	return string(buf)
}

// colorCastling returns both rights belonging to c.
func colorCastling(c Color) CastlingRights {
	if c == White {
		return WhiteKingSide | WhiteQueenSide
	}
	return BlackKingSide | BlackQueenSide
}

// castlingLoss maps the king and rook origin squares to the rights that are
// lost once anything moves from or onto them.
var castlingLoss = [64]CastlingRights{
	0:  WhiteQueenSide,
	4:  WhiteKingSide | WhiteQueenSide,
	7:  WhiteKingSide,
	56: BlackQueenSide,
	60: BlackKingSide | BlackQueenSide,
	63: BlackKingSide,
}

// position is the complete value state of a board. It is comparable, so a
// restored snapshot can be checked for equality with ==.
type position struct {
	placement      [64]Piece
	sideToMove     Color
	castling       CastlingRights
	enPassant      Square
	halfmoveClock  int
	fullmoveNumber int
}

// Board is a 64-slot mailbox board plus the snapshot stack used by Move and
// Undo. A Board is a single linear history: it must be owned by one caller
// at a time and performs no locking.
type Board struct {
	position
	snapshots []Snapshot
}

var startPlacement = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	for col := 0; col < 8; col++ {
		b.placement[col] = NewPiece(White, startPlacement[col])
		b.placement[8+col] = WhitePawn
		b.placement[48+col] = BlackPawn
		b.placement[56+col] = NewPiece(Black, startPlacement[col])
	}
	b.sideToMove = White
	b.castling = AllCastling
	b.enPassant = NoSquare
	b.fullmoveNumber = 1
	return b
}

// Clone returns an independent copy of the board, including its snapshot stack.
func (b *Board) Clone() *Board {
	c := &Board{position: b.position}
	if len(b.snapshots) > 0 {
		c.snapshots = append([]Snapshot(nil), b.snapshots...)
	}
	return c
}

// Equal reports whether both boards describe the same position. Snapshot
// stacks are not compared.
func (b *Board) Equal(o *Board) bool { return b.position == o.position }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.placement[sq] }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the castling rights still held.
func (b *Board) CastlingRights() CastlingRights { return b.castling }

// EnPassantSquare returns the en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassant }

// HalfmoveClock returns the number of half-moves since the last capture or pawn move.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// KingSquare returns the square of c's king, or NoSquare when there is none.
func (b *Board) KingSquare(c Color) Square {
	king := NewPiece(c, King)
	for sq := Square(0); sq < 64; sq++ {
		if b.placement[sq] == king {
			return sq
		}
	}
	return NoSquare
}

// SetPiece places p on sq, or clears the square when p is NoPiece. It edits
// the position directly and is meant for setting up boards, not for play.
func (b *Board) SetPiece(sq Square, p Piece) { b.placement[sq] = p }
