// ==============================================
// File: internal/dex/pumpfun/instructions.go
// ==============================================
package pumpfun

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// InstructionAccounts holds the per-trade accounts of a buy or sell instruction.
type InstructionAccounts struct {
	Mint                   solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	AssociatedUser         solana.PublicKey // user's token account for Mint
	User                   solana.PublicKey // signer and fee payer
}

// BuildBuyInstruction builds a buy instruction for Pump.fun protocol
func BuildBuyInstruction(accounts InstructionAccounts, amountOut, maxSolCost uint64) solana.Instruction {
	data := encodeTradeData(BuyDiscriminator, amountOut, maxSolCost)

	// Account list must be in the exact order expected by the program
	insAccounts := solana.AccountMetaSlice{
		{PublicKey: PumpFunGlobal, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunFeeRecipient, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AssociatedUser, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: SysvarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunEventAuth, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(PumpFunProgramID, insAccounts, data)
}

// BuildSellInstruction builds a sell instruction for Pump.fun protocol
func BuildSellInstruction(accounts InstructionAccounts, amount, minSolOutput uint64) solana.Instruction {
	data := encodeTradeData(SellDiscriminator, amount, minSolOutput)

	// Same shape as buy, with the ATA program in place of the rent sysvar
	insAccounts := solana.AccountMetaSlice{
		{PublicKey: PumpFunGlobal, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunFeeRecipient, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.Mint, IsSigner: false, IsWritable: false},
		{PublicKey: accounts.BondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AssociatedBondingCurve, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.AssociatedUser, IsSigner: false, IsWritable: true},
		{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: AssociatedTokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunEventAuth, IsSigner: false, IsWritable: false},
		{PublicKey: PumpFunProgramID, IsSigner: false, IsWritable: false},
	}

	return solana.NewInstruction(PumpFunProgramID, insAccounts, data)
}

// encodeTradeData lays out discriminator || a (u64 LE) || b (u64 LE).
func encodeTradeData(discriminator [8]byte, a, b uint64) []byte {
	data := make([]byte, 24)
	copy(data, discriminator[:])
	binary.LittleEndian.PutUint64(data[8:16], a)
	binary.LittleEndian.PutUint64(data[16:24], b)
	return data
}
