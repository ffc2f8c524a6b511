package chain

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// Motivos de fallo de verificación.
const (
	ReasonGenesisMalformed     = "genesis_malformed"
	ReasonGenesisOutOfPlace    = "genesis_out_of_place"
	ReasonIndexMismatch        = "index_mismatch"
	ReasonPreviousHashMismatch = "previous_hash_mismatch"
	ReasonHashMismatch         = "hash_mismatch"
	ReasonUnencodable          = "unencodable"
)

// Verification resultado de verificar una cadena. Si Valid es false, Index es el primer
// bloque donde falla una relación y Reason indica cuál.
type Verification struct {
	Valid    bool
	Length   int
	Index    int64
	Reason   string
	Expected string
	Actual   string
}

// Validate recorre la cadena y certifica enlaces y hashes. Se detiene en el primer fallo.
// Una cadena manipulada es un resultado normal: nunca entra en pánico ni modifica blocks.
func Validate(h Hasher, blocks []Block) Verification {
	res := Verification{Valid: true, Length: len(blocks), Index: -1}
	if len(blocks) == 0 {
		return res
	}

	genesis := blocks[0]
	if _, ok := genesis.Transaction.(entity.Genesis); !ok || genesis.Index != 0 || genesis.PreviousHash != GenesisPreviousHash {
		return fail(res, 0, ReasonGenesisMalformed, GenesisPreviousHash, genesis.PreviousHash)
	}
	if r, ok := checkHash(h, genesis, res); !ok {
		return r
	}

	for i := 1; i < len(blocks); i++ {
		cur, prev := blocks[i], blocks[i-1]
		if cur.Index != int64(i) {
			return fail(res, int64(i), ReasonIndexMismatch, "", "")
		}
		if _, ok := cur.Transaction.(entity.Genesis); ok {
			return fail(res, int64(i), ReasonGenesisOutOfPlace, "", string(entity.TxGenesis))
		}
		if cur.PreviousHash != prev.Hash {
			return fail(res, int64(i), ReasonPreviousHashMismatch, prev.Hash, cur.PreviousHash)
		}
		if r, ok := checkHash(h, cur, res); !ok {
			return r
		}
	}
	return res
}

func checkHash(h Hasher, b Block, res Verification) (Verification, bool) {
	recalculated, err := HashBlock(h, b)
	if err != nil {
		return fail(res, b.Index, ReasonUnencodable, "", err.Error()), false
	}
	if recalculated != b.Hash {
		return fail(res, b.Index, ReasonHashMismatch, recalculated, b.Hash), false
	}
	return res, true
}

func fail(res Verification, index int64, reason, expected, actual string) Verification {
	res.Valid = false
	res.Index = index
	res.Reason = reason
	res.Expected = expected
	res.Actual = actual
	return res
}
